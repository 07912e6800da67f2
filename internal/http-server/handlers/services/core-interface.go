package services

import (
	"DentEase/entity"
	"DentEase/impl/core"
	"context"
)

type Core interface {
	ListServices(ctx context.Context) ([]entity.Service, error)
	CreateService(ctx context.Context, in entity.ServiceInput) (*entity.Service, error)
	UpdateService(ctx context.Context, id string, in entity.ServiceInput) (*entity.Service, error)
	DeleteService(ctx context.Context, id string) error
	SetServiceImage(ctx context.Context, id string, up core.Upload) (*entity.Service, error)
	DeleteServiceImage(ctx context.Context, id string) (*entity.Service, error)
}
