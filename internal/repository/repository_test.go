package repository

import (
	"bytes"
	"testing"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*store.Store, logrus.FieldLogger, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	s, err := store.Open(store.NewMemoryAdapter(nil), log)
	require.NoError(t, err)
	return s, log, hook
}

func good(id, name, desc, material string, value int64) model.Good {
	return model.Good{ID: id, Name: name, Description: desc, Material: material, Weight: 1, Value: decimal.NewFromInt(value)}
}

func TestGoodAddThenGetAll(t *testing.T) {
	s, log, _ := newTestStore(t)
	repo := NewGoodRepo(s, log)

	g := good("g1", "Espada", "Espada de acero", "acero", 30)
	require.NoError(t, repo.Add(g))

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "g1", all[0].ID)
	assert.True(t, all[0].Value.Equal(g.Value))

	err = repo.Add(g)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	all, _ = repo.GetAll()
	assert.Len(t, all, 1)
}

func TestAddRejectsMissingID(t *testing.T) {
	s, log, _ := newTestStore(t)
	err := NewClientRepo(s, log).Add(model.Client{Name: "Sin id"})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestClientAndMerchantDuplicates(t *testing.T) {
	s, log, _ := newTestStore(t)
	clients := NewClientRepo(s, log)
	merchants := NewMerchantRepo(s, log)

	require.NoError(t, clients.Add(model.Client{ID: "c1", Name: "Geralt"}))
	assert.ErrorIs(t, clients.Add(model.Client{ID: "c1", Name: "Otro"}), ErrAlreadyExists)

	require.NoError(t, merchants.Add(model.Merchant{ID: "m1", Name: "Hattori"}))
	err := merchants.Add(model.Merchant{ID: "m1", Name: "Otro"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRemoveByIDNotFound(t *testing.T) {
	s, log, hook := newTestStore(t)
	repo := NewGoodRepo(s, log)
	require.NoError(t, repo.Add(good("g1", "Espada", "", "acero", 30)))

	removed, err := repo.RemoveByID("missing")
	require.NoError(t, err)
	assert.False(t, removed)

	all, _ := repo.GetAll()
	assert.Len(t, all, 1)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "missing", hook.LastEntry().Data["id"])

	removed, err = repo.RemoveByID("g1")
	require.NoError(t, err)
	assert.True(t, removed)
	all, _ = repo.GetAll()
	assert.Empty(t, all)
}

func TestUpdateByIDMergesOnlySuppliedFields(t *testing.T) {
	s, log, _ := newTestStore(t)
	repo := NewClientRepo(s, log)
	require.NoError(t, repo.Add(model.Client{ID: "c1", Name: "Geralt", Race: "brujo", Location: "Rivia"}))

	loc := "Kaer Morhen"
	updated, err := repo.UpdateByID("c1", model.ClientUpdate{Location: &loc})
	require.NoError(t, err)
	assert.True(t, updated)

	c, ok, err := repo.FindByID("c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.Client{ID: "c1", Name: "Geralt", Race: "brujo", Location: "Kaer Morhen"}, c)

	updated, err = repo.UpdateByID("nope", model.ClientUpdate{Location: &loc})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestGoodUpdateValue(t *testing.T) {
	s, log, _ := newTestStore(t)
	repo := NewGoodRepo(s, log)
	require.NoError(t, repo.Add(good("g1", "Espada", "Espada de acero", "acero", 30)))

	v := decimal.NewFromInt(45)
	ok, err := repo.UpdateByID("g1", model.GoodUpdate{Value: &v})
	require.NoError(t, err)
	require.True(t, ok)

	g, _, _ := repo.FindByID("g1")
	assert.True(t, g.Value.Equal(v))
	assert.Equal(t, "Espada de acero", g.Description)
}

func TestGoodSearch(t *testing.T) {
	s, log, _ := newTestStore(t)
	repo := NewGoodRepo(s, log)
	for _, g := range []model.Good{
		good("g1", "Espada", "Espada de plata", "plata", 50),
		good("g2", "Escudo", "Escudo de roble", "madera", 20),
		good("g3", "Espada", "Espada de acero", "acero", 30),
		good("g4", "Arco", "Arco élfico", "madera", 40),
	} {
		require.NoError(t, repo.Add(g))
	}

	res, err := repo.Search(SearchQuery{Field: GoodName, Value: "Espada", SortBy: GoodValue, Order: Asc})
	require.NoError(t, err)
	assert.Equal(t, []string{"g3", "g1"}, model.GoodIDs(res))

	res, err = repo.Search(SearchQuery{Field: GoodName, Value: "Espada", SortBy: GoodValue, Order: Desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g3"}, model.GoodIDs(res))

	res, err = repo.Search(SearchQuery{Field: GoodDescription, Value: "de", SortBy: GoodDescription})
	require.NoError(t, err)
	assert.Equal(t, []string{"g2", "g3", "g1"}, model.GoodIDs(res))

	res, err = repo.Search(SearchQuery{Field: GoodMaterial, Value: "madera"})
	require.NoError(t, err)
	assert.Equal(t, []string{"g2", "g4"}, model.GoodIDs(res))

	res, err = repo.Search(SearchQuery{Field: GoodName, Value: "espada"})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)

	_, err = repo.Search(SearchQuery{Field: "peso", Value: "1"})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSearchLocaleAwareOrdering(t *testing.T) {
	s, log, _ := newTestStore(t)
	repo := NewClientRepo(s, log)
	for _, c := range []model.Client{
		{ID: "1", Name: "Zoltan", Location: "Mahakam"},
		{ID: "2", Name: "Ñoño", Location: "Mahakam"},
		{ID: "3", Name: "Ángel", Location: "Mahakam"},
		{ID: "4", Name: "Nadia", Location: "Mahakam"},
	} {
		require.NoError(t, repo.Add(c))
	}

	res, err := repo.Search(SearchQuery{Field: ClientLocation, Value: "Mahakam", SortBy: ClientName})
	require.NoError(t, err)
	names := make([]string, len(res))
	for i, c := range res {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Ángel", "Nadia", "Ñoño", "Zoltan"}, names)
}

func TestStoreLevelErrorsPropagate(t *testing.T) {
	log, _ := test.NewNullLogger()
	uninit := store.New(store.NewMemoryAdapter(nil), log)
	_, err := NewGoodRepo(uninit, log).GetAll()
	assert.ErrorIs(t, err, store.ErrNotInitialized)
	assert.ErrorIs(t, NewClientRepo(uninit, log).Add(model.Client{ID: "c1"}), store.ErrNotInitialized)

	partial, err := store.Open(store.NewMemoryAdapter([]byte(`{"bienes":[]}`)), log)
	require.NoError(t, err)
	_, err = NewMerchantRepo(partial, log).GetAll()
	assert.ErrorIs(t, err, store.ErrMissingCollection)
	_, err = NewTransactionRepo(partial, log).RemoveByID("x")
	assert.ErrorIs(t, err, store.ErrMissingCollection)
	_, err = NewGoodRepo(partial, log).GetAll()
	assert.NoError(t, err)
}

func TestShowEmptyAndFilled(t *testing.T) {
	s, log, _ := newTestStore(t)
	repo := NewMerchantRepo(s, log)

	var buf bytes.Buffer
	require.NoError(t, repo.Show(&buf))
	assert.Equal(t, "No hay mercaderes registrados.\n", buf.String())

	require.NoError(t, repo.Add(model.Merchant{ID: "m1", Name: "Hattori", Type: "herrero", Location: "Novigrado"}))
	buf.Reset()
	require.NoError(t, repo.Show(&buf))
	assert.Contains(t, buf.String(), "Hattori")
	assert.Contains(t, buf.String(), "herrero")
}

func TestTransactionSearchByParty(t *testing.T) {
	s, log, _ := newTestStore(t)
	repo := NewTransactionRepo(s, log)
	geralt := model.ClientParty(model.Client{ID: "c1", Name: "Geralt"})
	hattori := model.MerchantParty(model.Merchant{ID: "m1", Name: "Hattori"})

	t1 := model.NewTransaction(model.TxSale, mustDate("2024-01-02"), nil, decimal.NewFromInt(10), geralt)
	t2 := model.NewTransaction(model.TxPurchase, mustDate("2024-01-01"), nil, decimal.NewFromInt(20), hattori)
	t3 := model.NewTransaction(model.TxSale, mustDate("2024-01-01"), nil, decimal.NewFromInt(5), geralt)
	for _, tx := range []model.Transaction{t1, t2, t3} {
		require.NoError(t, repo.Add(tx))
	}

	res, err := repo.Search(SearchQuery{Field: TxPartyName, Value: "Geralt", SortBy: TxDate})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, t3.ID, res[0].ID)
	assert.Equal(t, t1.ID, res[1].ID)

	res, err = repo.Search(SearchQuery{Field: TxType, Value: string(model.TxSale), SortBy: TxAmount, Order: Desc})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, t1.ID, res[0].ID)

	res, err = repo.Search(SearchQuery{Field: TxPartyID, Value: "m1"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, model.PartyMerchant, res[0].Party.Kind)
}
