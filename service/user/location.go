package user

import (
	"context"
	"strings"

	"gitee.com/taoJie_1/nlu-agent/global"
	"gitee.com/taoJie_1/nlu-agent/internal/geocode"
	"gitee.com/taoJie_1/nlu-agent/model/common"
	"gitee.com/taoJie_1/nlu-agent/model/enum"
)

// 保存地址的多语别名族。用户说"ghar bhej do"时要能对上type=home的地址。
var savedAddressAliases = map[string][]string{
	"home":   {"home", "ghar", "house", "homee", "ghr"},
	"office": {"office", "daftar", "work", "ofc"},
}

// locationResolver 位置是解析的第一站: 店铺搜索的地理过滤依赖它的输出,
// 所以它必须在店铺/商品解析之前同步完成。
type locationResolver struct {
	geocode geocode.Service
}

// resolve 按来源优先级逐级尝试: 保存地址别名 > 请求自带坐标 > 地理编码 > 城市默认点。
// 永不失败, 最差也返回默认坐标并在Reason里写明。
func (r *locationResolver) resolve(ctx context.Context, locationText string, rctx *common.ResolutionContext) *common.ResolvedLocation {
	normalized := strings.ToLower(strings.TrimSpace(locationText))

	// 1. 保存地址: 用户的home/office, 来源置信最高
	if rctx != nil && rctx.UserID != "" && normalized != "" {
		if loc := r.fromSavedAddress(ctx, normalized, rctx.UserID); loc != nil {
			return loc
		}
	}

	// 2. 调用方携带的实时坐标
	if rctx != nil && rctx.Lat != nil && rctx.Lng != nil {
		// 有明确位置文本时实时坐标只是兜底, 先试地理编码
		if normalized != "" {
			if loc := r.fromGeocode(ctx, locationText); loc != nil {
				return loc
			}
		}
		return &common.ResolvedLocation{
			Lat:    *rctx.Lat,
			Lng:    *rctx.Lng,
			Source: enum.LocationSourceInferred,
			Score:  0.8,
			Reason: "caller-provided coordinates",
		}
	}

	// 3. 地理编码自由文本
	if normalized != "" {
		if loc := r.fromGeocode(ctx, locationText); loc != nil {
			return loc
		}
	}

	// 4. 城市默认点
	return &common.ResolvedLocation{
		Lat:     global.Config.Geocode.DefaultLat,
		Lng:     global.Config.Geocode.DefaultLng,
		Address: global.Config.Geocode.DefaultCity,
		Source:  enum.LocationSourceInferred,
		Score:   0.3,
		Reason:  "fell back to city default point",
	}
}

func (r *locationResolver) fromSavedAddress(ctx context.Context, normalized, userID string) *common.ResolvedLocation {
	matchedType := ""
	for addrType, aliases := range savedAddressAliases {
		for _, alias := range aliases {
			if strings.Contains(normalized, alias) {
				matchedType = addrType
				break
			}
		}
		if matchedType != "" {
			break
		}
	}
	if matchedType == "" {
		return nil
	}

	addresses, err := r.geocode.SavedAddresses(ctx, userID)
	if err != nil {
		global.Log.Warnf("[resolve] 查询保存地址失败: %v", err)
		return nil
	}
	for _, addr := range addresses {
		if addr.Type == matchedType || strings.EqualFold(addr.Label, normalized) {
			return &common.ResolvedLocation{
				Lat:     addr.Lat,
				Lng:     addr.Lng,
				Address: addr.Address,
				Source:  enum.LocationSourceUserSaved,
				Score:   0.95,
				Reason:  "matched saved address alias: " + matchedType,
			}
		}
	}
	return nil
}

func (r *locationResolver) fromGeocode(ctx context.Context, text string) *common.ResolvedLocation {
	point, err := r.geocode.Geocode(ctx, text)
	if err != nil {
		global.Log.Warnf("[resolve] 地理编码失败 %q: %v", text, err)
		return nil
	}
	return &common.ResolvedLocation{
		Lat:     point.Lat,
		Lng:     point.Lng,
		Address: point.Address,
		Source:  enum.LocationSourceGeocoded,
		Score:   0.85,
		Reason:  "geocoded free-text location",
	}
}
