package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wholesaleworks/marketplace/internal/models"
	"github.com/wholesaleworks/marketplace/internal/store"
)

// fakeStore mimics the mongo store in memory, including the atomic
// reserve/restore contract of the cart operations.
type fakeStore struct {
	categories []models.Category
	products   map[primitive.ObjectID]*models.Product
	cart       map[primitive.ObjectID]*models.CartEntry
	orders     []models.Order
	users      map[string]*models.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[primitive.ObjectID]*models.Product{},
		cart:     map[primitive.ObjectID]*models.CartEntry{},
		users:    map[string]*models.User{},
	}
}

func (f *fakeStore) addProduct(p models.Product) primitive.ObjectID {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID] = &p
	return p.ID
}

func (f *fakeStore) Categories(_ context.Context, limit int64) ([]models.Category, error) {
	out := append([]models.Category{}, f.categories...)
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) ProductByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ProductsByCategory(_ context.Context, category string) ([]models.Product, error) {
	return f.filterProducts(func(p *models.Product) bool { return p.Category == category }), nil
}

func (f *fakeStore) AllProducts(_ context.Context) ([]models.Product, error) {
	return f.filterProducts(func(*models.Product) bool { return true }), nil
}

func (f *fakeStore) ProductsByOwner(_ context.Context, email string) ([]models.Product, error) {
	return f.filterProducts(func(p *models.Product) bool { return p.OwnerEmail == email }), nil
}

func (f *fakeStore) LatestProducts(_ context.Context, limit int64) ([]models.Product, error) {
	out := f.filterProducts(func(*models.Product) bool { return true })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) filterProducts(keep func(*models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range f.products {
		if keep(p) {
			out = append(out, *p)
		}
	}
	return out
}

func (f *fakeStore) CreateProduct(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	p, ok := f.products[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "brand":
			p.Brand = v.(string)
		case "category":
			p.Category = v.(string)
		case "description":
			p.Description = v.(string)
		case "image":
			p.Image = v.(string)
		case "price":
			p.Price = v.(float64)
		case "quantity":
			p.Quantity = v.(int64)
		case "minimum_selling_quantity":
			p.MinimumSellingQuantity = v.(int64)
		case "rating":
			p.Rating = int(v.(int64))
		}
	}
	return nil
}

func (f *fakeStore) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.products, id)
	for entryID, entry := range f.cart {
		if entry.ProductID == id {
			delete(f.cart, entryID)
		}
	}
	return nil
}

func (f *fakeStore) AddToCart(_ context.Context, entry *models.CartEntry) error {
	p, ok := f.products[entry.ProductID]
	if !ok {
		return store.ErrNotFound
	}
	if entry.Quantity < p.MinimumSellingQuantity {
		return store.ErrBelowMinimum
	}
	if p.Quantity < entry.Quantity {
		return store.ErrInsufficientStock
	}
	p.Quantity -= entry.Quantity
	entry.ID = primitive.NewObjectID()
	entry.AddedAt = time.Now()
	cp := *entry
	f.cart[entry.ID] = &cp
	return nil
}

func (f *fakeStore) RemoveFromCart(_ context.Context, id primitive.ObjectID) (*models.CartEntry, error) {
	entry, ok := f.cart[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(f.cart, id)
	if p, ok := f.products[entry.ProductID]; ok {
		p.Quantity += entry.Quantity
	}
	cp := *entry
	return &cp, nil
}

func (f *fakeStore) CartByEmail(_ context.Context, email string) ([]models.CartEntry, error) {
	out := []models.CartEntry{}
	for _, entry := range f.cart {
		if entry.Email != email {
			continue
		}
		cp := *entry
		if p, ok := f.products[entry.ProductID]; ok {
			pc := *p
			cp.Product = &pc
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.After(out[j].AddedAt) })
	return out, nil
}

func (f *fakeStore) CartEntryByID(_ context.Context, id primitive.ObjectID) (*models.CartEntry, error) {
	entry, ok := f.cart[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *entry
	if p, ok := f.products[entry.ProductID]; ok {
		pc := *p
		cp.Product = &pc
	}
	return &cp, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeStore) OrdersByEmail(_ context.Context, email string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if o.Email != email {
			continue
		}
		if p, ok := f.products[o.ProductID]; ok {
			pc := *p
			o.Product = &pc
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.Email]; ok {
		return store.ErrDuplicateUser
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.Email] = &cp
	return nil
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func newTestContext(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()

	var reader *bytes.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		reader = bytes.NewReader(bodyBytes)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, target, reader)
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)
	return rec, c
}

func withEmail(c echo.Context, email string) {
	c.Set("user", &jwt.Token{Claims: jwt.MapClaims{"email": email}})
}
