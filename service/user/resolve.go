package user

import (
	"context"
	"regexp"
	"strings"

	"gitee.com/taoJie_1/nlu-agent/internal/geocode"
	"gitee.com/taoJie_1/nlu-agent/internal/search"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"golang.org/x/sync/errgroup"
)

type IResolveService interface {
	// Resolve 把抽取出的原话槽位解析为后端实体。位置先行(店铺搜索需要地理过滤),
	// 其余槽位并发解析。单个槽位解析失败不影响整体, 只体现在置信度和ambiguities里。
	Resolve(ctx context.Context, slots common.ExtractedSlots, rctx *common.ResolutionContext) *common.ResolvedEntities
}

type resolveService struct {
	location *locationResolver
	store    *storeResolver
	item     *itemResolver

	orderNumberPattern *regexp.Regexp
	recentOrderPattern *regexp.Regexp
}

func NewResolveService(searchSvc search.Service, geocodeSvc geocode.Service, preference IPreferenceService) IResolveService {
	return &resolveService{
		location: &locationResolver{geocode: geocodeSvc},
		store:    &storeResolver{search: searchSvc, preference: preference},
		item:     &itemResolver{search: searchSvc, preference: preference},

		orderNumberPattern: regexp.MustCompile(`(?i)#?([A-Z]{0,3}\d{4,12})`),
		recentOrderPattern: regexp.MustCompile(`(?i)(last|pichla|wahi|same|recent|abhi wala|latest)`),
	}
}

func (s *resolveService) Resolve(ctx context.Context, slots common.ExtractedSlots, rctx *common.ResolutionContext) *common.ResolvedEntities {
	result := &common.ResolvedEntities{Ambiguities: []string{}}

	// 零槽位: 没有要解析的东西就是全部解析成功
	if slots.IsEmpty() {
		result.ResolutionConfidence = 1.0
		return result
	}

	// 位置先行: 店铺解析的地理过滤依赖它
	if slots.Location != "" || (rctx != nil && rctx.Lat != nil) {
		result.Location = s.location.resolve(ctx, slots.Location, rctx)
	}

	g, gctx := errgroup.WithContext(ctx)

	if slots.Store != "" {
		g.Go(func() error {
			result.Stores = s.store.resolve(gctx, slots.Store, result.Location, rctx)
			return nil
		})
	}
	if slots.Food != "" {
		g.Go(func() error {
			result.Items = s.item.resolve(gctx, slots.Food, rctx)
			return nil
		})
	}
	if slots.Order != "" {
		g.Go(func() error {
			result.Order = s.resolveOrder(slots.Order)
			return nil
		})
	}
	if slots.Person != "" {
		g.Go(func() error {
			result.Person = s.resolvePerson(slots.Person)
			return nil
		})
	}

	// 子解析器从不返回error, Wait只为同步
	_ = g.Wait()

	s.scoreResolution(slots, result)
	return result
}

// resolveOrder 订单引用不需要查后端: 明确的单号直接透传,
// "上一单/同样的"类引用打上IsRecent标记交给下游订单系统。
func (s *resolveService) resolveOrder(orderText string) *common.ResolvedOrder {
	if m := s.orderNumberPattern.FindStringSubmatch(orderText); m != nil {
		return &common.ResolvedOrder{
			OrderID: strings.ToUpper(m[1]),
			Score:   0.95,
			Reason:  "explicit order number",
		}
	}
	if s.recentOrderPattern.MatchString(orderText) {
		return &common.ResolvedOrder{
			IsRecent: true,
			Score:    0.8,
			Reason:   "reference to the most recent order",
		}
	}
	return nil
}

// resolvePerson 收件人只做透传: 联系人簿属于下游系统, 这里不持有用户通讯录
func (s *resolveService) resolvePerson(personText string) *common.ResolvedPerson {
	name := strings.TrimSpace(personText)
	if name == "" {
		return nil
	}
	return &common.ResolvedPerson{
		Name:   name,
		Score:  0.6,
		Reason: "user-provided recipient reference",
	}
}

// scoreResolution 整体置信度 = 解析成功率*0.6 + 平均最佳匹配分*0.4。
// 未解析的槽位名进ambiguities, 供下游生成澄清问题。
func (s *resolveService) scoreResolution(slots common.ExtractedSlots, result *common.ResolvedEntities) {
	type slotOutcome struct {
		name      string
		requested bool
		bestScore float64
	}

	outcomes := []slotOutcome{
		{name: "store", requested: slots.Store != "", bestScore: bestStoreScore(result.Stores)},
		{name: "food", requested: slots.Food != "", bestScore: bestItemScore(result.Items)},
		{name: "location", requested: slots.Location != "", bestScore: locationScore(result.Location)},
		{name: "order", requested: slots.Order != "", bestScore: orderScore(result.Order)},
		{name: "person", requested: slots.Person != "", bestScore: personScore(result.Person)},
	}

	var requested, resolved int
	var scoreSum float64
	for _, o := range outcomes {
		if !o.requested {
			continue
		}
		requested++
		if o.bestScore > 0 {
			resolved++
			scoreSum += o.bestScore
		} else {
			result.Ambiguities = append(result.Ambiguities, o.name)
		}
	}

	// quantity/time 不需要后端解析, 不计入置信度
	if requested == 0 {
		result.ResolutionConfidence = 1.0
		return
	}

	rate := float64(resolved) / float64(requested)
	var meanScore float64
	if resolved > 0 {
		meanScore = scoreSum / float64(resolved)
	}
	result.ResolutionConfidence = rate*0.6 + meanScore*0.4
}

func bestStoreScore(stores []common.ResolvedStore) float64 {
	if len(stores) == 0 {
		return 0
	}
	return stores[0].Score
}

func bestItemScore(items []common.ResolvedItem) float64 {
	if len(items) == 0 {
		return 0
	}
	return items[0].Score
}

func locationScore(loc *common.ResolvedLocation) float64 {
	if loc == nil {
		return 0
	}
	return loc.Score
}

func orderScore(order *common.ResolvedOrder) float64 {
	if order == nil {
		return 0
	}
	return order.Score
}

func personScore(person *common.ResolvedPerson) float64 {
	if person == nil {
		return 0
	}
	return person.Score
}
