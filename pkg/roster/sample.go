package roster

// Sample is the record rendered in test mode when the configuration
// provides none. Its values are long enough to show overflow in every
// text field.
func Sample() Record {
	return Record{
		Program:   "S1 Rekayasa Perangkat Lunak",
		FullName:  "JOHN DOE TESTING DAN TESTING",
		StudentID: "1201200001",
		GPA:       "3.85",
		Score:     "450",
		Advisor:   "Dr. Ahmad Wijaya, S.T., M.T.",
		CoAdvisors: []string{
			"Prof. Dr. Budi Santoso, S.T., M.T.",
			"Dr. Citra Dewi, S.T., M.Kom.",
		},
		Honors:   "Cumlaude",
		SeatCode: "1.1.L",
		Session:  Morning,
	}
}
