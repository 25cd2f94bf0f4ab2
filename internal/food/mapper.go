package food

import "fstore-be/internal/category"

func ToFoodSizeDTO(s *FoodSize) *FoodSizeDTO {
	if s == nil {
		return nil
	}
	return &FoodSizeDTO{ID: s.ID, Size: s.Size, Price: s.Price}
}

func ToFoodDTO(f *Food) *FoodDTO {
	if f == nil {
		return nil
	}

	dto := &FoodDTO{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Deleted:     f.IsDeleted,
		Category:    category.ToCategoryDTO(f.Category),
		Sizes:       make([]*FoodSizeDTO, 0, len(f.Sizes)),
		Images:      make([]string, 0, len(f.Images)),
		Tags:        make([]string, 0, len(f.Tags)),
	}
	for _, s := range f.Sizes {
		dto.Sizes = append(dto.Sizes, ToFoodSizeDTO(s))
	}
	for _, img := range f.Images {
		dto.Images = append(dto.Images, img.URL)
	}
	for _, t := range f.Tags {
		dto.Tags = append(dto.Tags, t.Name)
	}
	return dto
}

func ToFoodDTOs(foods []*Food) []*FoodDTO {
	out := make([]*FoodDTO, 0, len(foods))
	for _, f := range foods {
		out = append(out, ToFoodDTO(f))
	}
	return out
}
