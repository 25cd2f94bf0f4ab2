package category

type Category struct {
	ID   uint
	Name string
}

type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
