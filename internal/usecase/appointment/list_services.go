package appointment

import (
	"context"

	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/models"
)

type ListActiveServices struct {
	repo domain.Repository
}

func NewListActiveServices(repo domain.Repository) *ListActiveServices {
	return &ListActiveServices{repo: repo}
}

func (uc *ListActiveServices) Execute(ctx context.Context) ([]models.ServiceOffering, error) {
	return uc.repo.ListActiveOfferings(ctx)
}
