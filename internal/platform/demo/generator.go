// Package demo generates synthetic storefront data for demo and staging
// environments: customers with medical histories, a pharmacy category
// tree, medications, orders, and reviews. Generation is reproducible
// when a seed is supplied.
package demo

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medicart/medicart/internal/domain/catalog"
	"github.com/medicart/medicart/internal/domain/identity"
	"github.com/medicart/medicart/internal/domain/order"
	"github.com/medicart/medicart/internal/domain/review"
)

// Generator produces synthetic domain records from the data pools.
type Generator struct {
	rng     *rand.Rand
	counter uint64
}

// NewGenerator returns a generator seeded for reproducibility. A zero
// seed picks a time-based one.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// pickSome returns between min and max distinct entries from pool.
func (g *Generator) pickSome(pool []string, min, max int) []string {
	n := min + g.rng.Intn(max-min+1)
	if n > len(pool) {
		n = len(pool)
	}
	if n == 0 {
		return nil
	}
	idx := g.rng.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

func (g *Generator) chance(pct int) bool {
	return g.rng.Intn(100) < pct
}

func (g *Generator) price(min, max float64) float64 {
	v := min + g.rng.Float64()*(max-min)
	return float64(int(v*100)) / 100
}

func (g *Generator) phone() string {
	return fmt.Sprintf("(%03d) %03d-%04d",
		200+g.rng.Intn(800), 200+g.rng.Intn(800), g.rng.Intn(10000))
}

func (g *Generator) sku() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = alphabet[g.rng.Intn(len(alphabet))]
	}
	return string(b)
}

func (g *Generator) address() identity.Address {
	return identity.Address{
		Street:  g.pick(streetNames),
		City:    g.pick(cityNames),
		State:   g.pick(stateCodes),
		ZipCode: g.pick(zipCodes),
		Country: "United States",
	}
}

// User produces a synthetic customer. The password hash is filled in by
// the seeder so bcrypt runs once per batch rather than per user.
func (g *Generator) User() *identity.User {
	g.counter++
	first, last := g.pick(firstNames), g.pick(lastNames)
	addr := g.address()

	dob := time.Now().AddDate(-18-g.rng.Intn(63), 0, -g.rng.Intn(365))
	u := &identity.User{
		FirstName:         first,
		LastName:          last,
		Email:             fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), g.counter),
		Phone:             g.phone(),
		Address:           &addr,
		Role:              "user",
		IsVerified:        g.chance(80),
		DateOfBirth:       &dob,
		MedicalConditions: g.pickSome(medicalConditions, 0, 3),
		Allergies:         g.pickSome(allergyPool, 0, 2),
	}

	for _, med := range g.pickSome(medicationNames[:10], 0, 2) {
		start := time.Now().AddDate(0, -g.rng.Intn(12), 0)
		end := time.Now().AddDate(0, 1+g.rng.Intn(12), 0)
		u.Prescriptions = append(u.Prescriptions, identity.Prescription{
			Medication: med,
			Dosage:     g.pick(strengths),
			Frequency:  g.pick(dosageFrequencies),
			StartDate:  &start,
			EndDate:    &end,
		})
	}
	return u
}

// Category produces a top-level category for the given pool name.
func (g *Generator) Category(name string) *catalog.Category {
	return &catalog.Category{
		Name:        name,
		Description: fmt.Sprintf("%s medications and supplies.", name),
		IsActive:    true,
		SortOrder:   1 + g.rng.Intn(100),
	}
}

// Subcategory produces a child category under parent.
func (g *Generator) Subcategory(name string, parentID uuid.UUID) *catalog.Category {
	return &catalog.Category{
		Name:        name,
		Description: fmt.Sprintf("%s products.", name),
		ParentID:    &parentID,
		IsActive:    true,
		SortOrder:   1 + g.rng.Intn(50),
	}
}

// Product produces a synthetic medication assigned to the given category.
func (g *Generator) Product(categoryID uuid.UUID, subcategoryID *uuid.UUID) *catalog.Product {
	medication := g.pick(medicationNames)
	strength := g.pick(strengths)
	name := medication + " " + strength

	p := &catalog.Product{
		Name:                 name,
		Description:          fmt.Sprintf("%s by %s, supplied as %s.", name, g.pick(brandNames), g.pick(dosageForms)),
		ShortDescription:     fmt.Sprintf("%s %s", medication, strength),
		Brand:                g.pick(brandNames),
		CategoryID:           categoryID,
		SubcategoryID:        subcategoryID,
		Price:                g.price(5, 200),
		SKU:                  g.sku(),
		Barcode:              fmt.Sprintf("%012d", g.rng.Int63n(1_000_000_000_000)),
		StockQuantity:        g.rng.Intn(501),
		LowStockThreshold:    5 + g.rng.Intn(16),
		ActiveIngredient:     medication,
		Strength:             strength,
		DosageForm:           g.pick(dosageForms),
		PrescriptionRequired: g.chance(60),
		ControlledSubstance:  g.chance(10),
		StorageConditions:    g.pick(storageConditions),
		SideEffects:          g.pickSome(sideEffects, 2, 6),
		Contraindications:    g.pickSome(contraindications, 1, 4),
		DrugInteractions:     g.pickSome(drugInteractions, 1, 3),
		PregnancyCategory:    g.pick(pregnancyCategories),
		IsActive:             g.chance(90),
		IsFeatured:           g.chance(20),
		Tags:                 g.pickSome(productTags, 1, 3),
	}

	if g.chance(30) {
		cp := p.Price * (1.1 + g.rng.Float64()*0.4)
		cp = float64(int(cp*100)) / 100
		p.ComparePrice = &cp
	}
	if g.chance(15) {
		p.IsOnSale = true
		p.SalePercentage = float64(10 + g.rng.Intn(41))
	}
	expiry := time.Now().AddDate(1+g.rng.Intn(3), 0, 0)
	p.ExpiryDate = &expiry
	return p
}

var demoOrderStatuses = []string{
	order.StatusPending, order.StatusProcessing, order.StatusShipped,
	order.StatusDelivered, order.StatusCancelled,
}

var demoPaymentStatuses = []string{
	order.PaymentPending, order.PaymentPaid, order.PaymentFailed,
}

var demoPaymentMethods = []string{
	"credit_card", "paypal", "bank_transfer", "cash_on_delivery",
}

// Order produces a synthetic order over the given products. Demo orders
// carry 8% tax and a random shipping fee so dashboards have non-trivial
// numbers to show; real checkout does not add either.
func (g *Generator) Order(userID uuid.UUID, products []*catalog.Product) *order.Order {
	n := 1 + g.rng.Intn(5)
	if n > len(products) {
		n = len(products)
	}

	var items []*order.OrderItem
	subtotal := 0.0
	for _, j := range g.rng.Perm(len(products))[:n] {
		p := products[j]
		qty := 1 + g.rng.Intn(3)
		line := p.Price * float64(qty)
		subtotal += line
		items = append(items, &order.OrderItem{
			ProductID: p.ID,
			Quantity:  qty,
			Price:     p.Price,
			Total:     line,
		})
	}

	tax := subtotal * 0.08
	shipping := g.price(5, 15)
	addr := g.address()
	o := &order.Order{
		UserID:   userID,
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
		Status:   g.pick(demoOrderStatuses),
		ShippingAddress: order.Address{
			FirstName: g.pick(firstNames),
			LastName:  g.pick(lastNames),
			Street:    addr.Street,
			City:      addr.City,
			State:     addr.State,
			ZipCode:   addr.ZipCode,
			Country:   addr.Country,
			Phone:     g.phone(),
		},
		PaymentStatus:        g.pick(demoPaymentStatuses),
		PaymentMethod:        g.pick(demoPaymentMethods),
		TrackingNumber:       order.NewTrackingNumber(time.Now()),
		PrescriptionRequired: g.chance(30),
	}
	if o.PrescriptionRequired {
		o.PrescriptionApproved = g.chance(70)
	}
	return o
}

// Review produces a synthetic review for one user/product pair.
func (g *Generator) Review(userID, productID uuid.UUID) *review.Review {
	return &review.Review{
		UserID:     userID,
		ProductID:  productID,
		Rating:     1 + g.rng.Intn(5),
		Title:      g.pick(reviewTitles),
		Comment:    g.pick(reviewComments),
		IsVerified: g.chance(80),
	}
}
