package category

func ToCategoryDTO(c *Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{ID: c.ID, Name: c.Name}
}

func ToCategoryDTOs(cs []*Category) []*CategoryDTO {
	out := make([]*CategoryDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCategoryDTO(c))
	}
	return out
}
