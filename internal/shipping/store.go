package shipping

import "strings"

type Store struct {
	ID          string `json:"store_id"`
	Name        string `json:"store_name"`
	Address     string `json:"store_address"`
	City        string `json:"city"`
	District    string `json:"district"`
	Phone       string `json:"phone,omitempty"`
	IsAvailable bool   `json:"is_available"`
}

// StoreFilter narrows a store listing. Zero values mean "no filter".
type StoreFilter struct {
	City     string
	District string
	Search   string
	Limit    int
}

// Directory serves pickup-store listings per carrier. The carriers expose no
// public API yet, so listings come from a fixed table.
type Directory struct {
	stores map[Method][]Store
}

func NewDirectory() *Directory {
	return &Directory{stores: map[Method][]Store{
		MethodSevenEleven: {
			{ID: "711-001", Name: "台北車站門市", Address: "台北市中正區北平西路3號", City: "台北市", District: "中正區", Phone: "02-2312-3456", IsAvailable: true},
			{ID: "711-002", Name: "西門町門市", Address: "台北市萬華區成都路27號", City: "台北市", District: "萬華區", Phone: "02-2371-1234", IsAvailable: true},
			{ID: "711-003", Name: "板橋車站門市", Address: "新北市板橋區縣民大道二段7號", City: "新北市", District: "板橋區", Phone: "02-2959-1234", IsAvailable: true},
			{ID: "711-004", Name: "土城金城門市", Address: "新北市土城區金城路一段101號", City: "新北市", District: "土城區", Phone: "02-2260-5678", IsAvailable: true},
		},
		MethodShopee: {
			{ID: "shopee-001", Name: "蝦皮台北車站店", Address: "台北市中正區忠孝西路一段50號", City: "台北市", District: "中正區", IsAvailable: true},
			{ID: "shopee-002", Name: "蝦皮板橋店", Address: "新北市板橋區文化路一段188號", City: "新北市", District: "板橋區", IsAvailable: true},
			{ID: "shopee-003", Name: "蝦皮土城店", Address: "新北市土城區中央路三段88號", City: "新北市", District: "土城區", IsAvailable: true},
		},
	}}
}

// Stores lists the pickup stores of method that match f.
func (d *Directory) Stores(method Method, f StoreFilter) []Store {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Store, 0)
	for _, s := range d.stores[method] {
		if f.City != "" && s.City != f.City {
			continue
		}
		if f.District != "" && s.District != f.District {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Address), search) {
			continue
		}
		out = append(out, s)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

var cities = []string{
	"台北市", "新北市", "桃園市", "台中市", "台南市", "高雄市",
	"基隆市", "新竹市", "嘉義市",
	"新竹縣", "苗栗縣", "彰化縣", "南投縣", "雲林縣", "嘉義縣",
	"屏東縣", "宜蘭縣", "花蓮縣", "台東縣", "澎湖縣", "金門縣", "連江縣",
}

var districts = map[string][]string{
	"台北市": {"中正區", "大同區", "中山區", "松山區", "大安區", "萬華區", "信義區", "士林區", "北投區", "內湖區", "南港區", "文山區"},
	"新北市": {"板橋區", "三重區", "中和區", "永和區", "新莊區", "新店區", "樹林區", "鶯歌區", "三峽區", "淡水區", "汐止區", "瑞芳區", "土城區", "蘆洲區", "五股區", "泰山區", "林口區", "深坑區", "石碇區", "坪林區", "三芝區", "石門區", "八里區", "平溪區", "雙溪區", "貢寮區", "金山區", "萬里區", "烏來區"},
	"桃園市": {"桃園區", "中壢區", "平鎮區", "八德區", "楊梅區", "蘆竹區", "大溪區", "龜山區", "大園區", "觀音區", "新屋區", "龍潭區", "復興區"},
}

func Cities() []string {
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// Districts returns the districts of city, or an empty list when unknown.
func Districts(city string) []string {
	out := make([]string, len(districts[city]))
	copy(out, districts[city])
	return out
}
