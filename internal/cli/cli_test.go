package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"motoparts/internal/config"
	"motoparts/internal/models"
	"motoparts/internal/sandbox"
	"motoparts/internal/sandbox/sandboxtest"
	"motoparts/internal/storage"
)

// harness runs commands the way a shell would: a fresh command tree per
// invocation sharing one local storage.
type harness struct {
	t     *testing.T
	store storage.Storage
	sb    *sandboxtest.Harness
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{t: t, store: storage.NewMemoryStorage(), sb: sandboxtest.Start(t)}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	v := config.New()
	v.Set("API_URL", h.sb.URL)

	var out, errOut bytes.Buffer
	root := NewRootCommand(WithStorage(h.store), WithViper(v), WithLogger(zap.NewNop()))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String() + errOut.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) product(name string) models.Product {
	h.t.Helper()
	products, err := h.sb.Server.Products.GetAllProducts()
	require.NoError(h.t, err)
	for _, p := range products {
		if strings.HasPrefix(p.Name, name) {
			return p
		}
	}
	h.t.Fatalf("no seeded product %q", name)
	return models.Product{}
}

func TestProductsCommand(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("products")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Spark Plug NGK")
	assert.Contains(t, out, "out of stock")

	out = h.mustRun("products", "--search", "brake", "--sort", "price_asc")
	assert.Contains(t, out, "Front Brake Pads")
	assert.NotContains(t, out, "Spark Plug")
	assert.Less(t, strings.Index(out, "Rear Brake Shoe"), strings.Index(out, "Front Brake Pads"))

	out = h.mustRun("products", "--min-price", "5000")
	assert.Contains(t, out, "No products found.")

	piston := h.product("Piston Kit")
	out = h.mustRun("product", piston.ID)
	assert.Contains(t, out, "Piston Kit 150cc")
	assert.Contains(t, out, "(was KES 3600.00)")
	assert.Contains(t, out, "No reviews yet.")
}

func TestAccountCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("whoami")
	assert.Contains(t, out, "Browsing as guest.")
	assert.Contains(t, out, "Cart: guest_")

	out = h.mustRun("register", "--name", "Otieno Boda", "--email", "otieno@example.com", "--password", "secret1")
	assert.Contains(t, out, "Registration successful! Please login.")

	_, err := h.run("login", "--email", "otieno@example.com", "--password", "nope")
	require.Error(t, err)

	out = h.mustRun("login", "--email", "otieno@example.com", "--password", "secret1")
	assert.Contains(t, out, "Welcome back, Otieno Boda.")
	assert.NotContains(t, out, "Admin console")

	out = h.mustRun("whoami")
	assert.Contains(t, out, "Otieno Boda <otieno@example.com> role=user")
	assert.Contains(t, out, "Session expires")
	assert.Contains(t, out, "Cart: user_")

	_, err = h.run("admin", "orders")
	require.Error(t, err)

	out = h.mustRun("logout")
	assert.Contains(t, out, "Signed out.")
	out = h.mustRun("whoami")
	assert.Contains(t, out, "Browsing as guest.")
}

func TestCartAndCheckoutCommands(t *testing.T) {
	h := newHarness(t)
	plug := h.product("Spark Plug")

	out := h.mustRun("cart")
	assert.Contains(t, out, "Your cart is empty.")

	out = h.mustRun("cart", "add", plug.ID, "-q", "2")
	assert.Contains(t, out, "Items: 2  Total: KES 900.00")

	out = h.mustRun("cart", "inc", plug.ID)
	assert.Contains(t, out, "Items: 3")

	_, err := h.run("checkout", "--address", "Tom Mboya Street", "--phone", "0712345678")
	require.Error(t, err, "guests cannot check out")

	h.mustRun("register", "--name", "Wanjiru Moto", "--email", "wanjiru@example.com", "--password", "secret1")
	h.mustRun("login", "--email", "wanjiru@example.com", "--password", "secret1")
	h.mustRun("cart", "add", plug.ID)

	out = h.mustRun("checkout", "--address", "Tom Mboya Street", "--phone", "0712345678")
	assert.Contains(t, out, "placed, total KES 450.00.")
	assert.Contains(t, out, "Success. Request accepted for processing")

	out = h.mustRun("orders")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "Wanjiru Moto")

	out = h.mustRun("cart")
	assert.Contains(t, out, "Your cart is empty.")
}

func TestAdminCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("login", "--email", sandbox.AdminEmail, "--password", sandbox.AdminPassword)
	assert.Contains(t, out, "Admin console")

	out = h.mustRun("admin", "users")
	assert.Contains(t, out, sandbox.AdminEmail)

	out = h.mustRun("admin", "users", "create", "--name", "Second Admin", "--email", "ops@motoparts.local", "--password", "secret1")
	assert.Contains(t, out, "Admin ops@motoparts.local created.")

	out = h.mustRun("admin", "report")
	assert.Contains(t, out, "Revenue:         KES 0.00")
	assert.Contains(t, out, "Low stock")
	assert.Contains(t, out, "Oil Filter Boxer")

	out = h.mustRun("admin", "category", "add", "Suspension")
	assert.Contains(t, out, "Category ")

	_, err := h.run("admin", "orders", "status", "missing-order", "teleported")
	require.Error(t, err)
}
