package project

import "github.com/BruksfildServices01/clinic-crm/internal/httperr"

type Category string

const (
	CategoryInjection Category = "injection"
	CategoryLaser     Category = "laser"
	CategorySkincare  Category = "skincare"
	CategoryBody      Category = "body"
	CategorySurgery   Category = "surgery"
	CategoryOther     Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryInjection, CategoryLaser, CategorySkincare, CategoryBody, CategorySurgery, CategoryOther:
		return true
	}
	return false
}

func ParseCategory(v string) (Category, error) {
	c := Category(v)
	if !c.Valid() {
		return "", httperr.ErrBusiness("invalid_category")
	}
	return c, nil
}
