package services

// User is a person who can be chosen as signee of a signature block.
type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// SampleUsers is seeded into the signees collection.
var SampleUsers = []User{
	{ID: "user1", Name: "John Doe", Email: "john.doe@example.com", Role: "Sales Manager"},
	{ID: "user2", Name: "Jane Smith", Email: "jane.smith@example.com", Role: "Account Executive"},
	{ID: "user3", Name: "Michael Johnson", Email: "michael.johnson@example.com", Role: "Sales Representative"},
	{ID: "user4", Name: "Emily Davis", Email: "emily.davis@example.com", Role: "Customer Success Manager"},
	{ID: "user5", Name: "Robert Wilson", Email: "robert.wilson@example.com", Role: "CEO"},
}

// FindUser looks a user up by id.
func FindUser(users []User, id string) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
