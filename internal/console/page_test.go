package console

import (
	"context"
	"github.com/ariefcatur/nexus-admin/internal/apiclient"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var headphones = catalog.Product{ID: 1, Name: "Headphones", Price: decimal.RequireFromString("29.99"), Description: "Wireless"}

func newProducts(f *fakeProducts) *ProductsPage {
	return NewPage(f, ProductSchema, quietLog())
}

func TestMountLoadsList(t *testing.T) {
	f := &fakeProducts{items: []catalog.Product{headphones}}
	p := newProducts(f)
	assert.Equal(t, Loading, p.Phase())

	require.NoError(t, p.Mount(context.Background()))
	v := p.View()
	assert.Equal(t, Ready, v.Phase)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "Headphones", v.Items[0].Name)
	assert.Equal(t, []string{"getAll"}, f.Calls())
}

// Read failures are only logged: the page goes ready with whatever it had.
func TestMountFailureIsSilent(t *testing.T) {
	f := &fakeProducts{listErr: errBoom}
	p := newProducts(f)

	err := p.Mount(context.Background())
	assert.ErrorIs(t, err, errBoom)
	v := p.View()
	assert.Equal(t, Ready, v.Phase)
	assert.Empty(t, v.Items)
	assert.Empty(t, v.Alert)
}

func TestRefreshFailureKeepsStaleList(t *testing.T) {
	f := &fakeProducts{items: []catalog.Product{headphones}}
	p := newProducts(f)
	require.NoError(t, p.Mount(context.Background()))

	f.listErr = errBoom
	_ = p.Refresh(context.Background())
	assert.Len(t, p.Items(), 1)
}

func TestCreateSubmitCallsCreateThenGetAll(t *testing.T) {
	f := &fakeProducts{}
	p := newProducts(f)
	require.NoError(t, p.Mount(context.Background()))

	p.OpenCreate()
	p.EditForm(func(fm *ProductForm) {
		*fm = ProductForm{Name: "Mouse", Price: "19.99", Description: "Wired"}
	})
	require.NoError(t, p.Submit(context.Background()))

	assert.Equal(t, []string{"getAll", "create", "getAll"}, f.Calls())
	require.Len(t, f.created, 1)
	assert.Equal(t, "19.99", f.created[0].Price.StringFixed(2))

	v := p.View()
	assert.False(t, v.ModalOpen)
	assert.False(t, v.Submitting)
	assert.Equal(t, ProductForm{}, v.Form)
	assert.IsType(t, Creating[catalog.Product]{}, v.Mode)
	assert.Len(t, v.Items, 1)
}

func TestEditSubmitCallsUpdateWithOriginalID(t *testing.T) {
	f := &fakeProducts{items: []catalog.Product{headphones}}
	p := newProducts(f)
	require.NoError(t, p.Mount(context.Background()))

	p.OpenEdit(headphones)
	v := p.View()
	assert.Equal(t, "Edit Product", v.Title)
	assert.Equal(t, "Update Product", v.SubmitLabel)
	assert.Equal(t, ProductForm{Name: "Headphones", Price: "29.99", Description: "Wireless"}, v.Form)

	p.EditForm(func(fm *ProductForm) { fm.Name = "Headphones Pro" })
	require.NoError(t, p.Submit(context.Background()))

	assert.Equal(t, []string{"getAll", "update:1", "getAll"}, f.Calls())
	assert.Equal(t, "Headphones Pro", f.updated[1].Name)
	assert.Empty(t, f.created)
}

func TestUpdateRejectedKeepsModalOpen(t *testing.T) {
	f := &fakeProducts{items: []catalog.Product{headphones}}
	p := newProducts(f)
	require.NoError(t, p.Mount(context.Background()))

	p.OpenEdit(headphones)
	p.EditForm(func(fm *ProductForm) { fm.Price = "31.00" })
	f.saveErr = &apiclient.ValidationError{Status: 400, Message: "validation failed"}

	err := p.Submit(context.Background())
	assert.True(t, apiclient.IsValidation(err))

	v := p.View()
	assert.False(t, v.Submitting)
	assert.True(t, v.ModalOpen)
	assert.Equal(t, "Failed to save product", v.Alert)
	assert.Equal(t, ProductForm{Name: "Headphones", Price: "31.00", Description: "Wireless"}, v.Form)
	target, editing := EditTarget[catalog.Product](v.Mode)
	assert.True(t, editing)
	assert.EqualValues(t, 1, target.ID)
	assert.Equal(t, []string{"getAll", "update:1"}, f.Calls())

	p.DismissAlert()
	assert.Empty(t, p.View().Alert)
}

func TestMissingRequiredFieldMakesNoCall(t *testing.T) {
	f := &fakeProducts{}
	p := newProducts(f)
	require.NoError(t, p.Mount(context.Background()))

	p.OpenCreate()
	p.EditForm(func(fm *ProductForm) { fm.Name = "Mouse" })
	err := p.Submit(context.Background())

	var re *RequiredError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Price", re.Label)
	assert.Equal(t, []string{"getAll"}, f.Calls())
	assert.Equal(t, "Price is required", p.View().Alert)
	assert.True(t, p.View().ModalOpen)
}

func TestCloseResetsToCreateMode(t *testing.T) {
	p := newProducts(&fakeProducts{})
	p.OpenEdit(headphones)
	p.Close()

	v := p.View()
	assert.False(t, v.ModalOpen)
	assert.Equal(t, ProductForm{}, v.Form)
	_, editing := EditTarget[catalog.Product](v.Mode)
	assert.False(t, editing)

	// The next create must not see the previous edit target.
	p.OpenCreate()
	v = p.View()
	assert.Equal(t, "Add New Product", v.Title)
	assert.Equal(t, "Create Product", v.SubmitLabel)
	assert.Equal(t, ProductForm{}, v.Form)
}

func TestCloseDiscardsPartialCreateForm(t *testing.T) {
	f := &fakeProducts{}
	p := newProducts(f)
	p.OpenCreate()
	p.EditForm(func(fm *ProductForm) {
		fm.Name = "Mou"
		fm.Price = "1"
	})
	require.Equal(t, "Mou", p.View().Form.Name)

	p.Close()
	v := p.View()
	assert.False(t, v.ModalOpen)
	assert.Equal(t, ProductForm{}, v.Form)
	_, editing := EditTarget[catalog.Product](v.Mode)
	assert.False(t, editing)

	p.OpenCreate()
	assert.Equal(t, ProductForm{}, p.View().Form)
	assert.Empty(t, f.Calls())
}

func TestSubmitWithoutModal(t *testing.T) {
	f := &fakeProducts{}
	p := newProducts(f)
	assert.ErrorIs(t, p.Submit(context.Background()), ErrModalClosed)
	assert.Empty(t, f.Calls())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	f := &fakeProducts{items: []catalog.Product{headphones}}
	p := newProducts(f)
	require.NoError(t, p.Mount(context.Background()))

	var prompt string
	issued, err := p.Delete(context.Background(), 1, func(s string) bool { prompt = s; return false })
	require.NoError(t, err)
	assert.False(t, issued)
	assert.Equal(t, "Are you sure you want to delete this product?", prompt)
	assert.Equal(t, []string{"getAll"}, f.Calls())

	issued, err = p.Delete(context.Background(), 1, Confirmed)
	require.NoError(t, err)
	assert.True(t, issued)
	assert.Equal(t, []string{"getAll", "delete:1", "getAll"}, f.Calls())
}

// Delete failures are log-only, unlike save failures which alert.
func TestDeleteFailureIsNotAlerted(t *testing.T) {
	f := &fakeProducts{items: []catalog.Product{headphones}, delErr: &apiclient.NotFoundError{Resource: "products", ID: 1}}
	p := newProducts(f)
	require.NoError(t, p.Mount(context.Background()))

	issued, err := p.Delete(context.Background(), 1, Confirmed)
	assert.True(t, issued)
	assert.True(t, apiclient.IsNotFound(err))
	assert.Empty(t, p.View().Alert)
	assert.Len(t, p.Items(), 1)
	assert.Equal(t, []string{"getAll", "delete:1"}, f.Calls())
}

func TestSecondSubmitWhileInFlightIsRejected(t *testing.T) {
	f := &fakeProducts{block: make(chan struct{})}
	p := newProducts(f)
	require.NoError(t, p.Mount(context.Background()))
	p.OpenCreate()
	p.EditForm(func(fm *ProductForm) { *fm = ProductForm{Name: "Mouse", Price: "19.99"} })

	done := make(chan error, 1)
	go func() { done <- p.Submit(context.Background()) }()
	require.Eventually(t, func() bool { return p.View().Submitting }, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, p.Submit(context.Background()), ErrSubmitting)
	close(f.block)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"getAll", "create", "getAll"}, f.Calls())
}

func TestResultAfterUnmountIsDropped(t *testing.T) {
	f := &fakeProducts{block: make(chan struct{})}
	p := newProducts(f)
	require.NoError(t, p.Mount(context.Background()))
	p.OpenCreate()
	p.EditForm(func(fm *ProductForm) { *fm = ProductForm{Name: "Mouse", Price: "19.99"} })

	done := make(chan error, 1)
	go func() { done <- p.Submit(context.Background()) }()
	require.Eventually(t, func() bool { return p.View().Submitting }, time.Second, 5*time.Millisecond)

	p.Unmount()
	close(f.block)
	assert.ErrorIs(t, <-done, ErrUnmounted)
	// no refresh after teardown
	assert.Equal(t, []string{"getAll", "create"}, f.Calls())
	assert.ErrorIs(t, p.Refresh(context.Background()), ErrUnmounted)
}
