package rest_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestCustomers(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(1)
	f.customers.EXPECT().ListCustomers(gomock.Any()).Return([]domain.Customer{{ID: 1, Name: "Akbar Berkah Jaya"}}, nil)
	f.customers.EXPECT().CreateCustomer(gomock.Any(), "Midi Store").Return(&domain.Customer{ID: 11, Name: "Midi Store"}, nil)

	env := expectStatus(t, f.do(http.MethodGet, "/customers", "", testToken), http.StatusOK)
	require.Equal(t, "Customers retrieved successfully", env.Message)

	env = expectStatus(t, f.do(http.MethodPost, "/customers", `{"name":"Midi Store"}`, testToken), http.StatusCreated)
	require.Equal(t, "Customer created successfully", env.Message)
}

func TestCreateProduct_PriceParsing(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(1)
	f.products.EXPECT().CreateProduct(gomock.Any(), "Widget", int64(1500000)).
		Return(&domain.Product{ID: 4, Name: "Widget", Price: 1500000}, nil).Times(2)

	for _, body := range []string{
		`{"name":"Widget","price":1500000.75}`,
		`{"name":"Widget","price":"1500000"}`,
	} {
		env := expectStatus(t, f.do(http.MethodPost, "/products", body, testToken), http.StatusCreated)
		var p map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &p))
		require.EqualValues(t, 1500000, p["price"])
	}
}

func TestCreateProduct_InvalidPrice_400(t *testing.T) {
	for _, body := range []string{
		`{"name":"Widget","price":0}`,
		`{"name":"Widget","price":-3}`,
		`{"name":"Widget","price":1.999}`,
		`{"name":"Widget"}`,
	} {
		f := newFixture(t)
		f.loggedIn(1)
		f.products.EXPECT().CreateProduct(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		env := expectStatus(t, f.do(http.MethodPost, "/products", body, testToken), http.StatusBadRequest)
		require.Equal(t, domain.MsgInvalidPrice, env.Message, body)
	}
}
