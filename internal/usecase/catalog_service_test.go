package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports/mocks"
	"github.com/Gunvolt24/rapid_express/internal/usecase"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCustomerRepository(ctrl)
	svc := usecase.NewCustomerService(repo, noopLogger{})

	_, err := svc.CreateCustomer(context.Background(), "   ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.EXPECT().Create(gomock.Any(), &domain.Customer{Name: "Midi Store"}).
		DoAndReturn(func(_ context.Context, c *domain.Customer) error { c.ID = 11; return nil })

	c, err := svc.CreateCustomer(context.Background(), " Midi Store ")
	require.NoError(t, err)
	require.Equal(t, int64(11), c.ID)
}

func TestListCustomers_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCustomerRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))

	_, err := usecase.NewCustomerService(repo, noopLogger{}).ListCustomers(context.Background())
	require.ErrorIs(t, err, domain.ErrInternal)
}

func TestCreateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProductRepository(ctrl)
	svc := usecase.NewProductService(repo, noopLogger{})

	_, err := svc.CreateProduct(context.Background(), "Widget", 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateProduct(context.Background(), "", 100)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.EXPECT().Create(gomock.Any(), &domain.Product{Name: "Widget", Price: 1999}).Return(nil)
	p, err := svc.CreateProduct(context.Background(), "Widget", 1999)
	require.NoError(t, err)
	require.Equal(t, int64(1999), p.Price)
}
