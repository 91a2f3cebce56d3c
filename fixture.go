package main

// surveyFixture is the seeded state of the survey database.
var surveyFixture = Fixture{
	Tables: []TableSpec{
		{
			Name: "UserLogin",
			Columns: []ColumnSpec{
				{Name: "id", Type: "int", Nullable: false, Key: KeyPrimary},
				{Name: "user_name", Type: "varchar(100)", Nullable: true},
				{Name: "email_id", Type: "varchar(100)", Nullable: true},
				{Name: "password", Type: "varchar(100)", Nullable: true},
			},
			OrderBy: "id",
			Rows: [][]any{
				{1, "Mansi", "mansi@example.com", "pass123"},
				{2, "princy", "princy@example.com", "pass456"},
				{3, "raj", "raj@example.com", "pass789"},
				{4, "mohit", "mohit@example.com", "pass000"},
				{5, "sara", "sara@example.com", "pass999"},
			},
		},
		{
			Name: "UserDetails",
			Columns: []ColumnSpec{
				{Name: "id", Type: "int", Nullable: false, Key: KeyPrimary},
				{Name: "userLogin_id", Type: "int", Nullable: true, Key: KeyForeign},
				{Name: "gender", Type: "varchar(10)", Nullable: true},
				{Name: "city", Type: "varchar(50)", Nullable: true},
				{Name: "mobile_number", Type: "varchar(20)", Nullable: true},
				{Name: "zipcode", Type: "varchar(10)", Nullable: true},
			},
			OrderBy: "id",
			Rows: [][]any{
				{101, 2, "F", "Mumbai", "9876543210", "400001"},
				{102, 1, "F", "Delhi", "9998887776", "110001"},
				{103, 3, "M", "Pune", "9988776655", "411001"},
				{104, 4, "M", "Chennai", "9877612345", "600001"},
				{105, 5, "F", "Delhi", "8888777666", "110002"},
			},
		},
	},
	Queries: []QuerySpec{
		{Index: 0, Column: "id", Want: []string{"102", "105"}, Description: "city = 'Delhi'"},
		{Index: 1, Column: "id", Want: []string{"3", "4"}, Description: "gender = 'M'"},
		{Index: 2, Column: "user_name", Want: []string{"mansi", "princy"}, Unordered: true, Description: "users: Mansi, princy"},
	},
}

// buildBattery turns a fixture into the ordered check list: table existence,
// then structure, then data, then query output.
func buildBattery(f Fixture) []Check {
	var checks []Check
	for _, t := range f.Tables {
		checks = append(checks, tableExistsCheck(t.Name))
	}
	for _, t := range f.Tables {
		checks = append(checks, columnStructureCheck(t.Name, t.Columns))
	}
	for _, t := range f.Tables {
		checks = append(checks, rowContentCheck(t))
	}
	for _, q := range f.Queries {
		checks = append(checks, queryOutputCheck(q))
	}
	return checks
}
