package rest

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/domain"
)

type signupRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (r signupRequest) validate() error {
	var c checks
	c.require(notBlank(r.Name), "name should not be empty")
	c.require(isEmail(r.Email), "email must be an email")
	c.require(passwordLenOK(r.Password), "password must be between 6 and 32 characters")
	c.require(passwordLenOK(r.PasswordConfirmation), "password_confirmation must be between 6 and 32 characters")
	return c.err()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() error {
	var c checks
	c.require(isEmail(r.Email), "email must be an email")
	c.require(r.Password != "", "password should not be empty")
	return c.err()
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r createUserRequest) validate() error {
	var c checks
	c.require(notBlank(r.Name), "name should not be empty")
	c.require(isEmail(r.Email), "email must be an email")
	c.require(passwordLenOK(r.Password), "password must be between 6 and 32 characters")
	return c.err()
}

// updateUserRequest: отсутствующие поля не меняются.
type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r updateUserRequest) validate() error {
	var c checks
	if r.Name != nil {
		c.require(notBlank(*r.Name), "name should not be empty")
	}
	if r.Email != nil {
		c.require(isEmail(*r.Email), "email must be an email")
	}
	if r.Password != nil {
		c.require(passwordLenOK(*r.Password), "password must be between 6 and 32 characters")
	}
	return c.err()
}

func (r updateUserRequest) patch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Email: r.Email, Password: r.Password}
}

type createCustomerRequest struct {
	Name string `json:"name"`
}

// createProductRequest: price принимается числом или строкой ("1500000.50").
type createProductRequest struct {
	Name  string          `json:"name"`
	Price json.RawMessage `json:"price"`
}

func (r createProductRequest) price() (int64, error) {
	return domain.ParsePrice(strings.Trim(strings.TrimSpace(string(r.Price)), `"`))
}

type orderLine struct {
	ProductID int64 `json:"product_id"`
	Qty       int64 `json:"qty"`
}

type createOrderRequest struct {
	CustomerID int64       `json:"customer_id"`
	Products   []orderLine `json:"products"`
}

func (r createOrderRequest) validate() error {
	var c checks
	c.require(r.CustomerID >= 1, "customer_id must be a positive number")
	return c.err()
}

func (r createOrderRequest) input() domain.CreateOrderInput {
	return domain.CreateOrderInput{CustomerID: r.CustomerID, Products: toLines(r.Products)}
}

type updateOrderRequest struct {
	Products []orderLine `json:"products"`
}

func toLines(in []orderLine) []domain.LineItemInput {
	out := make([]domain.LineItemInput, len(in))
	for i, l := range in {
		out[i] = domain.LineItemInput{ProductID: l.ProductID, Qty: l.Qty}
	}
	return out
}

// Проекции ответа: хеш пароля наружу не попадает.

type userView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserView(u *domain.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func toUserViews(users []domain.User) []userView {
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, toUserView(&users[i]))
	}
	return out
}

type authView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresIn string `json:"expires_in"` // RFC3339, момент истечения токена
}

func toAuthView(u *domain.User, t *domain.AuthToken) authView {
	return authView{
		ID: u.ID, Name: u.Name, Email: u.Email,
		Token: t.Value, ExpiresIn: t.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

type customerView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCustomerViews(cs []domain.Customer) []customerView {
	out := make([]customerView, 0, len(cs))
	for _, c := range cs {
		out = append(out, customerView(c))
	}
	return out
}

type productView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProductViews(ps []domain.Product) []productView {
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, productView(p))
	}
	return out
}
