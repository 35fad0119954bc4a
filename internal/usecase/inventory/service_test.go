package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	domainInventory "bookstore-management/internal/domain/inventory"
	"bookstore-management/internal/domain/inventory/mocks"
	appErrors "bookstore-management/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingNotifier struct {
	events []LowStockEvent
	err    error
}

func (n *recordingNotifier) NotifyLowStock(_ context.Context, event LowStockEvent) error {
	n.events = append(n.events, event)
	return n.err
}

func newTestService(t *testing.T) (*Service, *mocks.MockRepository, *recordingNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().Collection().Return(domainInventory.Books).AnyTimes()
	notifier := &recordingNotifier{}
	return NewService(repo, notifier), repo, notifier
}

func decodeRequest(t *testing.T, body string) *ItemRequest {
	t.Helper()
	var req ItemRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

const validBook = `{
	"title": "Dune",
	"author": "Frank Herbert",
	"isbn": "978-3-16-148410-0",
	"totalStock": 10,
	"reservedStock": 2,
	"minimumStock": 3,
	"costPrice": 4.5,
	"salePrice": 9.9,
	"publicationDate": "1965-08-01"
}`

func TestCreate_Success(t *testing.T) {
	svc, repo, notifier := newTestService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item *domainInventory.Item) error {
		assert.Equal(t, "Dune", item.Title)
		require.NotNil(t, item.PublicationDate)
		assert.Equal(t, 1965, item.PublicationDate.Year())
		item.ID = 1
		item.RecomputeAvailable()
		return nil
	})

	resp, err := svc.Create(context.Background(), decodeRequest(t, validBook))
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, 8, resp.AvailableStock)
	assert.Empty(t, notifier.events)
}

func TestCreate_MissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), decodeRequest(t, `{"title":"Dune","isbn":""}`))
	require.Error(t, err)
	assert.Equal(t, "Please fill in all required fields: author, isbn, totalStock, minimumStock, costPrice, salePrice", err.Error())
}

func TestCreate_ZeroCountsArePresent(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item *domainInventory.Item) error {
		item.ID = 2
		item.RecomputeAvailable()
		return nil
	})

	body := `{"title":"T","author":"A","isbn":"0-306-40615-2","totalStock":0,"minimumStock":0,"costPrice":0,"salePrice":0}`
	_, err := svc.Create(context.Background(), decodeRequest(t, body))
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "books", notifier.events[0].Collection)
	assert.Equal(t, uint(2), notifier.events[0].ID)
}

func TestCreate_LegacyFields(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item *domainInventory.Item) error {
		assert.Equal(t, 12.5, item.SalePrice)
		assert.Equal(t, 20, item.TotalStock)
		return nil
	})

	body := `{"title":"T","author":"A","isbn":"0306406152","price":12.5,"stockQuantity":20,"minimumStock":1,"costPrice":6}`
	_, err := svc.Create(context.Background(), decodeRequest(t, body))
	require.NoError(t, err)
}

func TestCreate_InvalidISBN(t *testing.T) {
	svc, _, _ := newTestService(t)

	body := `{"title":"T","author":"A","isbn":"123","totalStock":1,"minimumStock":1,"costPrice":1,"salePrice":1}`
	_, err := svc.Create(context.Background(), decodeRequest(t, body))
	assert.ErrorIs(t, err, appErrors.ErrInvalidISBN)
}

func TestCreate_NegativeStock(t *testing.T) {
	svc, _, _ := newTestService(t)

	body := `{"title":"T","author":"A","isbn":"0306406152","totalStock":-1,"minimumStock":1,"costPrice":1,"salePrice":1}`
	_, err := svc.Create(context.Background(), decodeRequest(t, body))
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestCreate_Conflict(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domainInventory.ErrISBNExists)

	_, err := svc.Create(context.Background(), decodeRequest(t, validBook))
	assert.ErrorIs(t, err, domainInventory.ErrISBNExists)
	assert.Equal(t, 400, appErrors.KindOf(err).HTTPStatus())
}

func TestUpdate_EmptyPatch(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Update(context.Background(), 1, decodeRequest(t, `{"unknown":"field"}`))
	assert.ErrorIs(t, err, appErrors.ErrEmptyUpdate)
}

func TestUpdate_StockChangeNotifiesWhenLow(t *testing.T) {
	svc, repo, notifier := newTestService(t)

	gomock.InOrder(
		repo.EXPECT().Update(gomock.Any(), uint(1), gomock.Any()).DoAndReturn(func(_ context.Context, _ uint, p *domainInventory.Patch) error {
			require.NotNil(t, p.ReservedStock)
			assert.Equal(t, 9, *p.ReservedStock)
			return nil
		}),
		repo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(&domainInventory.Item{
			ID: 1, Title: "Dune", TotalStock: 10, ReservedStock: 9, AvailableStock: 1, MinimumStock: 3,
		}, nil),
	)

	require.NoError(t, svc.Update(context.Background(), 1, decodeRequest(t, `{"reservedStock":9}`)))
	require.Len(t, notifier.events, 1)
	assert.Equal(t, 1, notifier.events[0].AvailableStock)
}

func TestUpdate_NotifierFailureIsNotReturned(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	notifier.err = errors.New("broker down")

	repo.EXPECT().Update(gomock.Any(), uint(1), gomock.Any()).Return(nil)
	repo.EXPECT().GetByID(gomock.Any(), uint(1)).Return(&domainInventory.Item{ID: 1, AvailableStock: 0, MinimumStock: 1}, nil)

	assert.NoError(t, svc.Update(context.Background(), 1, decodeRequest(t, `{"totalStock":0}`)))
}

func TestUpdate_TitleOnlySkipsStockCheck(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	repo.EXPECT().Update(gomock.Any(), uint(4), gomock.Any()).Return(nil)

	require.NoError(t, svc.Update(context.Background(), 4, decodeRequest(t, `{"title":"New"}`)))
	assert.Empty(t, notifier.events)
}

func TestUpdate_InvalidISBN(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Update(context.Background(), 1, decodeRequest(t, `{"isbn":"978-3-16-148410-1"}`))
	assert.ErrorIs(t, err, appErrors.ErrInvalidISBN)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().Update(gomock.Any(), uint(8), gomock.Any()).Return(domainInventory.ErrNotFoundForUpdate(domainInventory.Books))

	err := svc.Update(context.Background(), 8, decodeRequest(t, `{"title":"X"}`))
	assert.Equal(t, "Book not found for update", err.Error())
	assert.Equal(t, 404, appErrors.KindOf(err).HTTPStatus())
}

func TestListAndDelete(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().GetAll(gomock.Any()).Return([]*domainInventory.Item{{ID: 1}, {ID: 2}}, nil)
	repo.EXPECT().Delete(gomock.Any(), uint(2)).Return(nil)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NoError(t, svc.Delete(context.Background(), 2))
}

func TestDateUnmarshal(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-09-15T01:01:00Z"`), &d))
	assert.Equal(t, time.Date(2024, 9, 15, 1, 1, 0, 0, time.UTC), d.Time)

	require.NoError(t, json.Unmarshal([]byte(`"2024-09-15"`), &d))
	assert.Equal(t, 15, d.Day())

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.Nil(t, empty.ptr())

	assert.Error(t, json.Unmarshal([]byte(`"15/09/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240915`), &d))
}

func TestCreate_MarkupOnlyTextIsMissing(t *testing.T) {
	svc, _, _ := newTestService(t)

	body := `{"title":"<b></b>","author":"<i> </i>","isbn":"0306406152","totalStock":1,"minimumStock":1,"costPrice":1,"salePrice":1}`
	_, err := svc.Create(context.Background(), decodeRequest(t, body))
	require.Error(t, err)
	assert.Equal(t, "Please fill in all required fields: title, author", err.Error())
}

func TestCreate_ReservedAboveTotal(t *testing.T) {
	svc, _, _ := newTestService(t)

	body := `{"title":"T","author":"A","isbn":"0306406152","totalStock":1,"reservedStock":5,"minimumStock":0,"costPrice":1,"salePrice":1}`
	_, err := svc.Create(context.Background(), decodeRequest(t, body))
	assert.ErrorIs(t, err, domainInventory.ErrReservedExceedsTotal)
	assert.Equal(t, 400, appErrors.KindOf(err).HTTPStatus())
}

func TestUpdate_RejectsMarkupOnlyTitleAndOverReservation(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Update(context.Background(), 1, decodeRequest(t, `{"title":"<b></b>"}`))
	assert.Equal(t, "Please fill in all required fields: title", err.Error())

	err = svc.Update(context.Background(), 1, decodeRequest(t, `{"totalStock":2,"reservedStock":3}`))
	assert.ErrorIs(t, err, domainInventory.ErrReservedExceedsTotal)
}
