package roster

type fixtureStudent struct {
	name    string
	rollNo  string
	section string
}

type fixtureClass struct {
	id       string
	name     string
	students []fixtureStudent
}

var school = []fixtureClass{
	{
		id:   "class-vi",
		name: "Class VI",
		students: []fixtureStudent{
			{"Hridhaan", "11", "Daisies"},
			{"Maneet", "17", "Daffodils"},
			{"Mishti", "18", "Daffodils"},
			{"Sayaan", "27", "Daffodils"},
		},
	},
	{
		id:   "class-vii",
		name: "Class VII",
		students: []fixtureStudent{
			{"Devansh Upadhyay", "", ""},
			{"Upendra Rathod", "29", ""},
			{"Vritika", "31", ""},
		},
	},
	{
		id:   "class-viii",
		name: "Class VIII",
		students: []fixtureStudent{
			{"Mishwa Pokar", "20", "Daffodils"},
			{"Aadiaraj Hole", "2", "Daffodils"},
			{"Atharv Ray", "", "Daffodils"},
			{"Adya", "3", "Daisies"},
			{"Kashyap Patel", "18", "Daisies"},
			{"Mujtaba Khan", "19", "Daffodils"},
			{"Lucky Tiwari", "19", "Daisies"},
			{"Shubham Raj", "35", "Daisies"},
			{"Dimple", "10", "Daffodils"},
		},
	},
	{
		id:   "class-ix",
		name: "Class IX",
		students: []fixtureStudent{
			{"Dev Bhagat", "13", "Daffodil"},
			{"Tivra Pandye", "36", "Daffodil"},
			{"Aditya Kar", "3", "Daffodil"},
			{"Arav Patel", "7", "Daffodil"},
			{"Anuja Gholap", "6", "Daffodil"},
			{"Gaytri", "16", "Daffodil"},
			{"Karan", "", "Daisies"},
		},
	},
	{
		id:   "class-x",
		name: "Class X",
		students: []fixtureStudent{
			{"Aaryaman Rastogi", "", "Daffodils"},
			{"Pranshu", "", ""},
		},
	},
}

// Seed loads the school's roster into s. Ids continue from the store's counter.
func Seed(s *Store) error {
	for _, c := range school {
		if err := s.AddClass(c.id, c.name); err != nil {
			return err
		}
		for _, st := range c.students {
			if _, err := s.AddStudent(c.id, st.name, st.rollNo, st.section); err != nil {
				return err
			}
		}
	}
	return nil
}
