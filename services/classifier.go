package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Sentinels returned when no classification rule matches.
const (
	BrandOther    = "Other"
	CategoryOther = "other"
)

// keywordRule maps a label to the substrings that select it. Rules are
// evaluated in declaration order and the first match wins, so the order of
// the rule tables below is part of the output contract — do not reorder.
type keywordRule struct {
	label    string
	keywords []string
}

var brandRules = []keywordRule{
	{"Apple", []string{"iphone", "ipad", "ipod", "airpods", "apple watch", "macbook", "apple"}},
	{"Samsung", []string{"samsung", "galaxy"}},
	{"Xiaomi", []string{"xiaomi", "redmi", "poco", "mi band"}},
	{"Honor", []string{"honor"}},
	{"Huawei", []string{"huawei"}},
	{"Realme", []string{"realme"}},
	{"OnePlus", []string{"oneplus", "one plus"}},
	{"Oppo", []string{"oppo"}},
	{"Vivo", []string{"vivo"}},
	{"Tecno", []string{"tecno"}},
	{"Infinix", []string{"infinix"}},
	{"Nokia", []string{"nokia"}},
	{"JBL", []string{"jbl"}},
}

var categoryRules = []keywordRule{
	{"display", []string{"дисплей", "экран", "тачскрин", "display", "lcd", "touchscreen"}},
	{"battery", []string{"аккумулятор", "батарея", "акб", "battery"}},
	{"camera", []string{"камера", "camera"}},
	{"body", []string{"корпус", "крышка", "рамка", "housing"}},
	{"flex", []string{"шлейф", "flex"}},
	{"speaker", []string{"динамик", "буззер", "speaker", "buzzer"}},
	{"button", []string{"кнопка", "button"}},
	{"sim", []string{"sim-лоток", "сим-лоток", "лоток", "sim", "сим"}},
	{"glass", []string{"стекло", "glass"}},
	{"charger", []string{"зарядное", "зарядка", "сзу", "charger"}},
	{"cable", []string{"кабель", "cable", "usb"}},
	{"case", []string{"чехол", "бампер", "накладка", "case"}},
	{"tablet", []string{"планшет", "tablet", "tab "}},
	{"watch", []string{"часы", "watch", "смарт-часы"}},
	{"earphones", []string{"наушники", "гарнитура", "earphones", "buds"}},
}

// modelPatterns capture known product-line naming conventions. First match
// anywhere in the name wins; the matched span (trimmed) is the model.
var modelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)iphone\s?(se|xs|xr|x|\d{1,2})(\s?(pro|max|plus|mini))*`),
	regexp.MustCompile(`(?i)ipad\s?(pro|air|mini)?\s?\d*`),
	regexp.MustCompile(`(?i)galaxy\s[a-z]\d{1,3}\w*(\s?(ultra|plus|fe))?`),
	regexp.MustCompile(`(?i)redmi\snote\s\d{1,2}\w*(\s?(pro|plus|s))*`),
	regexp.MustCompile(`(?i)redmi\s\d{1,2}\w*(\s?(pro|prime|c))*`),
	regexp.MustCompile(`(?i)poco\s[a-z]\d{1,2}\w*(\s?(pro|gt))?`),
	regexp.MustCompile(`(?i)\bmi\s\d{1,2}\w*(\s?(pro|lite|ultra))*`),
	regexp.MustCompile(`(?i)honor\s\d{1,2}\w*(\s?(pro|lite|x))*`),
	regexp.MustCompile(`(?i)huawei\sp\d{1,2}\w*(\s?(pro|lite))*`),
	regexp.MustCompile(`(?i)realme\s(gt\s?)?\d{1,2}\w*(\s?(pro|neo))*`),
}

// priceInNameRegexp extracts a currency-suffixed amount from free text, for
// exports that embed the price in the product name instead of a column.
var priceInNameRegexp = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:руб\.?|р\.|₽)`)

// ClassifierStats accumulates the distinct brands and categories seen during
// one build pass. It is owned by the caller and threaded through explicitly
// so that separate runs never share state.
type ClassifierStats struct {
	brands     map[string]struct{}
	categories map[string]struct{}
}

// NewClassifierStats returns an empty accumulator.
func NewClassifierStats() *ClassifierStats {
	return &ClassifierStats{
		brands:     make(map[string]struct{}),
		categories: make(map[string]struct{}),
	}
}

func (s *ClassifierStats) addBrand(b string)    { s.brands[b] = struct{}{} }
func (s *ClassifierStats) addCategory(c string) { s.categories[c] = struct{}{} }

// Brands returns the distinct brands seen, sorted.
func (s *ClassifierStats) Brands() []string { return sortedKeys(s.brands) }

// Categories returns the distinct categories seen, sorted.
func (s *ClassifierStats) Categories() []string { return sortedKeys(s.categories) }

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Classifier derives brand, model and category from free-text product names.
type Classifier struct{}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Brand returns the first brand whose keyword occurs in the lowercased name,
// or BrandOther.
func (c *Classifier) Brand(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range brandRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label
			}
		}
	}
	return BrandOther
}

// Model returns the matched span of the first model pattern that matches the
// name, or "" when no pattern matches.
func (c *Classifier) Model(name string) string {
	for _, re := range modelPatterns {
		if m := re.FindString(name); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// Category returns the first category whose keyword occurs in the lowercased
// name, or CategoryOther.
func (c *Classifier) Category(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label
			}
		}
	}
	return CategoryOther
}

// Classify derives all three attributes at once and records the brand and
// category in stats.
func (c *Classifier) Classify(name string, stats *ClassifierStats) (brand, model, category string) {
	brand = c.Brand(name)
	model = c.Model(name)
	category = c.Category(name)
	if stats != nil {
		stats.addBrand(brand)
		stats.addCategory(category)
	}
	return brand, model, category
}

// PriceFromName parses a currency-suffixed amount out of a product name.
// Returns 0 when the name carries no recognizable price.
func (c *Classifier) PriceFromName(name string) float64 {
	m := priceInNameRegexp.FindStringSubmatch(name)
	if len(m) < 2 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}
