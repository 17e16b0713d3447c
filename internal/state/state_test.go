package state_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoparts/internal/models"
	"motoparts/internal/state"
)

func cartWith(qty int) *models.Cart {
	return &models.Cart{CartID: "user_1", Items: []models.CartItem{{Product: models.Product{ID: "p1"}, Quantity: qty, Price: 10}}}
}

func TestCartSequencingDropsStaleResponses(t *testing.T) {
	store := state.NewStore(state.State{}, nil)

	first := store.NextCartSeq()
	second := store.NextCartSeq()
	require.Less(t, first, second)

	// The later request answers first.
	store.Dispatch(state.CartLoaded{Cart: cartWith(3), Seq: second})
	store.Dispatch(state.CartLoaded{Cart: cartWith(2), Seq: first})
	assert.Equal(t, 3, store.State().Cart.Items[0].Quantity)

	store.Dispatch(state.CartCleared{Seq: first})
	assert.NotNil(t, store.State().Cart)

	third := store.NextCartSeq()
	store.Dispatch(state.CartCleared{Seq: third})
	assert.Nil(t, store.State().Cart)
	assert.Equal(t, third, store.State().CartSeq)
}

func TestReduceRequestLifecycle(t *testing.T) {
	s := state.Reduce(state.State{}, state.RequestStarted{Slice: state.SliceProducts})
	assert.True(t, s.StatusOf(state.SliceProducts).Loading)

	failed := state.Reduce(s, state.RequestFailed{Slice: state.SliceProducts, Err: "boom"})
	assert.Equal(t, state.Status{Err: "boom"}, failed.StatusOf(state.SliceProducts))
	// The earlier snapshot is untouched.
	assert.True(t, s.StatusOf(state.SliceProducts).Loading)

	loaded := state.Reduce(failed, state.ProductsLoaded{Products: []models.Product{{ID: "1"}}})
	assert.Equal(t, state.Status{}, loaded.StatusOf(state.SliceProducts))
	assert.Len(t, loaded.Products, 1)
}

func TestReduceLogoutClearsUserData(t *testing.T) {
	s := state.State{
		Auth:     models.AuthSession{User: &models.User{ID: "1"}, AccessToken: "t"},
		Cart:     cartWith(1),
		Orders:   []models.Order{{ID: "o"}},
		Wishlist: []models.Product{{ID: "p"}},
		Products: []models.Product{{ID: "p"}},
	}
	s = state.Reduce(s, state.LoggedOut{})
	assert.False(t, s.Auth.Authenticated())
	assert.Nil(t, s.Cart)
	assert.Nil(t, s.Orders)
	assert.Nil(t, s.Wishlist)
	assert.Len(t, s.Products, 1)
}

func TestReduceCollections(t *testing.T) {
	s := state.State{Products: []models.Product{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}}
	before := s.Products

	s = state.Reduce(s, state.ProductStored{Product: models.Product{ID: "2", Name: "B"}})
	s = state.Reduce(s, state.ProductStored{Product: models.Product{ID: "3", Name: "c"}})
	s = state.Reduce(s, state.ProductRemoved{ID: "1"})
	assert.Equal(t, []models.Product{{ID: "2", Name: "B"}, {ID: "3", Name: "c"}}, s.Products)
	assert.Equal(t, "b", before[1].Name)

	s = state.Reduce(s, state.ReviewsLoaded{Reviews: []models.Review{{ID: "r1"}}})
	s = state.Reduce(s, state.ReviewAdded{Review: models.Review{ID: "r2"}})
	assert.Equal(t, "r2", s.Reviews[0].ID)
	s = state.Reduce(s, state.ReviewUpdated{Review: models.Review{ID: "r1", Rating: 5}})
	assert.Equal(t, 5, s.Reviews[1].Rating)
	s = state.Reduce(s, state.ReviewDeleted{ID: "r2"})
	assert.Len(t, s.Reviews, 1)

	s = state.Reduce(s, state.OrderStored{Order: models.Order{ID: "o1", Status: models.OrderCancelled}, Message: "done"})
	assert.Equal(t, "done", s.SuccessMessage)
	assert.Empty(t, s.Orders)
	s = state.Reduce(s, state.SuccessCleared{})
	assert.Empty(t, s.SuccessMessage)

	engine := models.Category{ID: "c1", Name: "Engine"}
	s = state.Reduce(s, state.SubCategoriesLoaded{SubCategories: []models.SubCategory{{ID: "s1"}}})
	s = state.Reduce(s, state.CategorySelected{Category: &engine})
	assert.Equal(t, &engine, s.SelectedCategory)
	assert.Nil(t, s.SubCategories)
}

func TestStoreSubscribe(t *testing.T) {
	store := state.NewStore(state.State{}, nil)

	var seen []string
	unsubscribe := store.Subscribe(func(s state.State) {
		seen = append(seen, s.SuccessMessage)
	})
	store.Dispatch(state.OrderStored{Message: "one"})
	unsubscribe()
	store.Dispatch(state.OrderStored{Message: "two"})
	assert.Equal(t, []string{"one"}, seen)
	assert.Equal(t, "two", store.State().SuccessMessage)
}

func TestListenersNotifiedInSubscriptionOrder(t *testing.T) {
	store := state.NewStore(state.State{}, nil)

	var order []int
	unsubs := make([]func(), 0, 6)
	for i := range 6 {
		unsubs = append(unsubs, store.Subscribe(func(state.State) { order = append(order, i) }))
	}
	for range 3 {
		order = nil
		store.Dispatch(state.SuccessCleared{})
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
	}

	unsubs[2]()
	unsubs[4]()
	store.Subscribe(func(state.State) { order = append(order, 6) })
	order = nil
	store.Dispatch(state.SuccessCleared{})
	assert.Equal(t, []int{0, 1, 3, 5, 6}, order)
}

func TestListenerMayDispatch(t *testing.T) {
	store := state.NewStore(state.State{}, nil)
	store.Subscribe(func(s state.State) {
		if s.SuccessMessage != "" {
			store.Dispatch(state.SuccessCleared{})
		}
	})
	store.Dispatch(state.OrderStored{Message: "hello"})
	assert.Empty(t, store.State().SuccessMessage)
}

func TestConcurrentDispatch(t *testing.T) {
	store := state.NewStore(state.State{}, nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := store.NextCartSeq()
			store.Dispatch(state.CartLoaded{Cart: cartWith(int(seq)), Seq: seq})
		}()
	}
	wg.Wait()
	// Whatever order they landed in, the newest issued response wins.
	assert.Equal(t, uint64(50), store.State().CartSeq)
	assert.Equal(t, 50, store.State().Cart.Items[0].Quantity)
}
