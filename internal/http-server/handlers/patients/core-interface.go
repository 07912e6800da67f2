package patients

import (
	"DentEase/entity"
	"DentEase/internal/lib/pagination"
	"context"
	"io"
)

type Core interface {
	ListPatients(ctx context.Context, q, filter string, page int) (*pagination.Page[entity.PatientRow], error)
	ExportPatients(ctx context.Context, w io.Writer) error
}
