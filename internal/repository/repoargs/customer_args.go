package repoargs

type CreateCustomer struct {
	Name     string
	Email    string
	ImageURL string
}

type UpdateCustomer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

type CustomerFilter struct {
	Query  string
	Limit  uint
	Offset uint
}
