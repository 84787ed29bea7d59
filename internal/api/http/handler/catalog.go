package handler

import (
	"math/rand/v2"
	"net/http"

	"github.com/dtroode/authkeeper/internal/api/http/httpx"
)

type product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type order struct {
	ID        int `json:"id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type joke struct {
	Message string `json:"message"`
}

// Catalog serves static demo resources to authenticated users.
type Catalog struct {
	products []product
	orders   []order
	jokes    []string
	pick     func(n int) int
}

// NewCatalog creates a Catalog with fixed demo data.
func NewCatalog() *Catalog {
	return &Catalog{
		products: []product{
			{ID: 1, Name: "Keyboard", Price: 49.99},
			{ID: 2, Name: "Mouse", Price: 19.99},
		},
		orders: []order{
			{ID: 1, ProductID: 1, Quantity: 2},
			{ID: 2, ProductID: 2, Quantity: 1},
		},
		jokes: []string{
			"There are 10 kinds of admins: those who read binary and those who reset passwords.",
			"sudo make me a sandwich.",
			"It works on my machine, so we ship the machine.",
			"The cloud is just someone else's computer that you are admin of now.",
			"Have you tried turning the role off and on again?",
		},
		pick: rand.IntN,
	}
}

func (h *Catalog) Products(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.products)
}

func (h *Catalog) Orders(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.orders)
}

// Joke returns a random admin joke.
func (h *Catalog) Joke(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, joke{Message: h.jokes[h.pick(len(h.jokes))]})
}
