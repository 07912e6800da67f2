package entity

import "time"

// Service is an entry of the clinic's treatment catalog.
type Service struct {
	ID          string    `json:"id" bson:"_id" validate:"required"`
	Name        string    `json:"name" bson:"name" validate:"required"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	Category    string    `json:"category" bson:"category"`
	Icon        string    `json:"icon" bson:"icon"`
	ImageID     string    `json:"imageId,omitempty" bson:"image_id,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"-"`
	Order       int       `json:"order" bson:"order"`
	IsActive    bool      `json:"isActive" bson:"is_active"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// ServiceInput is the editable part of a Service.
type ServiceInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"max=50"`
	Icon        string  `json:"icon" validate:"max=50"`
	Order       int     `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

// Apply copies the input onto s. A nil IsActive keeps the current value.
func (in *ServiceInput) Apply(s *Service) {
	s.Name = in.Name
	s.Description = in.Description
	s.Price = in.Price
	s.Category = in.Category
	s.Icon = in.Icon
	s.Order = in.Order
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
}
