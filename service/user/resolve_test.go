package user

import (
	"context"
	"errors"
	"math"
	"testing"

	"gitee.com/taoJie_1/nlu-agent/internal/geocode"
	"gitee.com/taoJie_1/nlu-agent/internal/search"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// fakeSearch 可编程的搜索索引桩, 主索引和遗留后端分开控制
type fakeSearch struct {
	storeHits       []search.StoreHit
	storeErr        error
	itemHits        []search.ItemHit
	itemErr         error
	legacyStoreHits []search.StoreHit
	legacyItemHits  []search.ItemHit
	legacyErr       error
}

func (f *fakeSearch) SearchStores(ctx context.Context, query string, geo *search.GeoFilter) ([]search.StoreHit, error) {
	return f.storeHits, f.storeErr
}

func (f *fakeSearch) SearchItems(ctx context.Context, query string, geo *search.GeoFilter) ([]search.ItemHit, error) {
	return f.itemHits, f.itemErr
}

func (f *fakeSearch) LegacySearchStores(ctx context.Context, query string) ([]search.StoreHit, error) {
	return f.legacyStoreHits, f.legacyErr
}

func (f *fakeSearch) LegacySearchItems(ctx context.Context, query string) ([]search.ItemHit, error) {
	return f.legacyItemHits, f.legacyErr
}

func (f *fakeSearch) LegacyListItems(ctx context.Context) ([]search.ItemHit, error) {
	return f.legacyItemHits, f.legacyErr
}

// fakeGeocode 地理服务桩
type fakeGeocode struct {
	point     *geocode.Point
	pointErr  error
	addresses []geocode.SavedAddress
	addrErr   error
}

func (f *fakeGeocode) Geocode(ctx context.Context, text string) (*geocode.Point, error) {
	return f.point, f.pointErr
}

func (f *fakeGeocode) SavedAddresses(ctx context.Context, userID string) ([]geocode.SavedAddress, error) {
	return f.addresses, f.addrErr
}

func newResolveService(s *fakeSearch, g *fakeGeocode) IResolveService {
	return NewResolveService(s, g, NewPreferenceService())
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestResolveZeroSlots 没有槽位就没有解析任务, 置信度必须是满分而不是0
func TestResolveZeroSlots(t *testing.T) {
	svc := newResolveService(&fakeSearch{}, &fakeGeocode{})

	got := svc.Resolve(context.Background(), common.ExtractedSlots{}, nil)
	if got.ResolutionConfidence != 1.0 {
		t.Errorf("零槽位的ResolutionConfidence = %v, 期望 1.0", got.ResolutionConfidence)
	}
	if len(got.Ambiguities) != 0 {
		t.Errorf("零槽位不应有ambiguities: %v", got.Ambiguities)
	}
}

func TestResolveOrderNumber(t *testing.T) {
	svc := newResolveService(&fakeSearch{}, &fakeGeocode{})

	got := svc.Resolve(context.Background(), common.ExtractedSlots{Order: "#ORD12345"}, nil)
	if got.Order == nil {
		t.Fatal("明确单号应被解析")
	}
	if got.Order.OrderID != "ORD12345" {
		t.Errorf("OrderID = %q, 期望 ORD12345", got.Order.OrderID)
	}
	if got.Order.Score != 0.95 {
		t.Errorf("Score = %v, 期望 0.95", got.Order.Score)
	}
	// 置信度 = 成功率1.0*0.6 + 最佳分0.95*0.4
	if !almostEqual(got.ResolutionConfidence, 0.98) {
		t.Errorf("ResolutionConfidence = %v, 期望 0.98", got.ResolutionConfidence)
	}
}

// TestResolveRecentOrder "上一单/同样的"类引用打IsRecent标记, 不查后端
func TestResolveRecentOrder(t *testing.T) {
	svc := newResolveService(&fakeSearch{}, &fakeGeocode{})

	got := svc.Resolve(context.Background(), common.ExtractedSlots{Order: "wahi wala"}, nil)
	if got.Order == nil {
		t.Fatal("近期订单引用应被解析")
	}
	if !got.Order.IsRecent {
		t.Error("IsRecent应为true")
	}
	if got.Order.Score != 0.8 {
		t.Errorf("Score = %v, 期望 0.8", got.Order.Score)
	}
}

func TestResolveStoreFromIndex(t *testing.T) {
	fake := &fakeSearch{
		storeHits: []search.StoreHit{
			{StoreID: "st_1", Name: "Sharma Kirana Store", Score: 0.9, DistanceKm: 1.2},
			{StoreID: "st_2", Name: "Sharma General", Score: 0.5, DistanceKm: 3.4},
		},
	}
	svc := newResolveService(fake, &fakeGeocode{})

	got := svc.Resolve(context.Background(), common.ExtractedSlots{Store: "sharma kirana"}, nil)
	if len(got.Stores) == 0 {
		t.Fatal("主索引命中时应返回店铺候选")
	}
	if got.Stores[0].StoreID != "st_1" {
		t.Errorf("最佳候选 = %s, 期望 st_1", got.Stores[0].StoreID)
	}
	for _, st := range got.Stores {
		if st.Score <= 0 || st.Score > 1 {
			t.Errorf("店铺分 %v 超出(0,1]", st.Score)
		}
	}
	if len(got.Ambiguities) != 0 {
		t.Errorf("解析成功不应有ambiguities: %v", got.Ambiguities)
	}
}

// TestResolveStoreLegacyFallback 主索引挂掉时退到遗留后端, 固定中等分
func TestResolveStoreLegacyFallback(t *testing.T) {
	fake := &fakeSearch{
		storeErr:        errors.New("index unavailable"),
		legacyStoreHits: []search.StoreHit{{StoreID: "st_9", Name: "Gupta Store"}},
	}
	svc := newResolveService(fake, &fakeGeocode{})

	got := svc.Resolve(context.Background(), common.ExtractedSlots{Store: "gupta"}, nil)
	if len(got.Stores) != 1 {
		t.Fatalf("遗留后端命中应被返回, got %d", len(got.Stores))
	}
	if got.Stores[0].Score != 0.7 {
		t.Errorf("降级路径的Score = %v, 期望固定0.7", got.Stores[0].Score)
	}
}

// TestResolveItemLegacyFallback 向量库未接入且主索引失败时, 菜品走遗留后端
func TestResolveItemLegacyFallback(t *testing.T) {
	fake := &fakeSearch{
		itemErr:        errors.New("index unavailable"),
		legacyItemHits: []search.ItemHit{{ItemID: "it_1", Name: "Chicken Biryani", Price: 180}},
	}
	svc := newResolveService(fake, &fakeGeocode{})

	got := svc.Resolve(context.Background(), common.ExtractedSlots{Food: "biryani"}, nil)
	if len(got.Items) != 1 {
		t.Fatalf("遗留后端命中应被返回, got %d", len(got.Items))
	}
	if got.Items[0].Score != 0.7 {
		t.Errorf("降级路径的Score = %v, 期望固定0.7", got.Items[0].Score)
	}
}

// TestResolveAmbiguities 解析不出来的槽位进ambiguities, 并压低整体置信度
func TestResolveAmbiguities(t *testing.T) {
	// 店铺两级搜索都空手而归, 订单号可解析
	fake := &fakeSearch{legacyErr: errors.New("legacy down")}
	svc := newResolveService(fake, &fakeGeocode{})

	got := svc.Resolve(context.Background(), common.ExtractedSlots{Store: "xyz", Order: "ORD12345"}, nil)
	if len(got.Ambiguities) != 1 || got.Ambiguities[0] != "store" {
		t.Errorf("Ambiguities = %v, 期望 [store]", got.Ambiguities)
	}
	// 成功率0.5*0.6 + 最佳分0.95*0.4
	if !almostEqual(got.ResolutionConfidence, 0.68) {
		t.Errorf("ResolutionConfidence = %v, 期望 0.68", got.ResolutionConfidence)
	}
}

// TestResolveLocationSavedAddress "ghar"要对上用户保存的home地址
func TestResolveLocationSavedAddress(t *testing.T) {
	g := &fakeGeocode{
		addresses: []geocode.SavedAddress{
			{Type: "home", Label: "Ghar", Lat: 28.7, Lng: 77.1, Address: "B-12, Rohini"},
		},
	}
	svc := newResolveService(&fakeSearch{}, g)

	got := svc.Resolve(context.Background(), common.ExtractedSlots{Location: "ghar"}, &common.ResolutionContext{UserID: "u_1"})
	if got.Location == nil {
		t.Fatal("保存地址应被解析")
	}
	if got.Location.Source != enum.LocationSourceUserSaved {
		t.Errorf("Source = %s, 期望 %s", got.Location.Source, enum.LocationSourceUserSaved)
	}
	if got.Location.Score != 0.95 {
		t.Errorf("Score = %v, 期望 0.95", got.Location.Score)
	}
	if got.Location.Lat != 28.7 {
		t.Errorf("Lat = %v, 期望 28.7", got.Location.Lat)
	}
}

// TestResolveLocationCityDefault 什么都解析不出来时落到城市默认点, 但标明低分来源
func TestResolveLocationCityDefault(t *testing.T) {
	g := &fakeGeocode{pointErr: errors.New("no result"), addrErr: errors.New("no addresses")}
	svc := newResolveService(&fakeSearch{}, g)

	got := svc.Resolve(context.Background(), common.ExtractedSlots{Location: "kahi bhi"}, nil)
	if got.Location == nil {
		t.Fatal("位置解析永不失败, 最差也应返回默认点")
	}
	if got.Location.Source != enum.LocationSourceInferred {
		t.Errorf("Source = %s, 期望 %s", got.Location.Source, enum.LocationSourceInferred)
	}
	if got.Location.Score != 0.3 {
		t.Errorf("Score = %v, 期望 0.3", got.Location.Score)
	}
	if got.Location.Lat != 28.6139 || got.Location.Address != "Delhi" {
		t.Errorf("默认点 = (%v, %q), 期望配置中的城市默认值", got.Location.Lat, got.Location.Address)
	}
}

// TestResolveGeocodedLocation 自由文本位置走地理编码
func TestResolveGeocodedLocation(t *testing.T) {
	g := &fakeGeocode{point: &geocode.Point{Lat: 19.07, Lng: 72.87, Address: "Andheri West, Mumbai"}}
	svc := newResolveService(&fakeSearch{}, g)

	got := svc.Resolve(context.Background(), common.ExtractedSlots{Location: "andheri west"}, nil)
	if got.Location == nil {
		t.Fatal("地理编码成功时应返回位置")
	}
	if got.Location.Source != enum.LocationSourceGeocoded {
		t.Errorf("Source = %s, 期望 %s", got.Location.Source, enum.LocationSourceGeocoded)
	}
	if got.Location.Score != 0.85 {
		t.Errorf("Score = %v, 期望 0.85", got.Location.Score)
	}
}
