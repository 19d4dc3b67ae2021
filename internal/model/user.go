package model

// User is a dashboard account. Password holds a bcrypt hash.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// Customer is the party an invoice is billed to.
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// LoginForm is the raw submission of the login form.
type LoginForm struct {
	Email      string `form:"email" json:"email"`
	Password   string `form:"password" json:"password"`
	RedirectTo string `form:"redirectTo" json:"redirectTo"`
}
