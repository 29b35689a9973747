package registry

import "example.com/roster/internal/domain"

// DefaultCatalog returns the activities offered at process start.
func DefaultCatalog() []domain.Activity {
	return []domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball",
			Description:     "Team sport focusing on basketball skills and competitive play",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu"},
		},
		{
			Name:            "Tennis Club",
			Description:     "Learn tennis techniques and participate in matches",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu"},
		},
		{
			Name:            "Music Band",
			Description:     "Play instruments and perform in school concerts",
			Schedule:        "Mondays and Fridays, 3:30 PM - 4:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"lucas@mergington.edu", "mia@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Explore painting, drawing, and sculpture techniques",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"isabella@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct, and produce school theater performances",
			Schedule:        "Wednesdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"ava@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Math Olympiad",
			Description:     "Solve challenging problems and prepare for math competitions",
			Schedule:        "Tuesdays, 4:00 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"liam@mergington.edu"},
		},
		{
			Name:            "Science Club",
			Description:     "Run experiments and explore topics beyond the classroom",
			Schedule:        "Fridays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"charlotte@mergington.edu", "ethan@mergington.edu"},
		},
	}
}
