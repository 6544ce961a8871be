package refdata

// Category is one entry of the merchant-category table: a business type,
// its MCC code, and the mean/std-dev of typical ticket sizes.
type Category struct {
	Name      string
	MCC       string
	AvgAmount float64
	StdAmount float64
}

// Categories is the merchant category table with MCC codes.
var Categories = []Category{
	{"Grocery Stores", "5411", 65, 45},
	{"Restaurants", "5812", 35, 25},
	{"Gas Stations", "5541", 45, 20},
	{"Coffee Shops", "5814", 8, 5},
	{"Department Stores", "5311", 85, 60},
	{"Electronics Stores", "5732", 250, 200},
	{"Pharmacies", "5912", 30, 25},
	{"Fast Food", "5814", 12, 6},
	{"Online Shopping", "5999", 75, 50},
	{"Streaming Services", "4899", 15, 5},
	{"Utilities", "4900", 120, 50},
	{"Insurance", "6300", 180, 80},
	{"Hotels", "7011", 180, 100},
	{"Airlines", "4511", 350, 200},
	{"Clothing Stores", "5651", 65, 45},
	{"Fitness", "7941", 50, 30},
	{"Entertainment", "7832", 25, 15},
	{"Auto Services", "7538", 150, 100},
	{"Home Improvement", "5200", 120, 90},
	{"Pet Stores", "5995", 45, 30},
}

// CategoryNames returns just the category names, for sampling preferred
// categories on customer profiles.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}

// MerchantNames maps each category to its pool of brand prefixes.
// Categories without a pool fall back to "Local Store".
var MerchantNames = map[string][]string{
	"Grocery Stores":     {"Whole Foods", "Trader Joe's", "Safeway", "Kroger", "Publix", "Albertsons", "Wegmans"},
	"Restaurants":        {"Olive Garden", "Applebee's", "Chili's", "Red Lobster", "Outback", "Cheesecake Factory"},
	"Gas Stations":       {"Shell", "Chevron", "ExxonMobil", "BP", "76", "Costco Gas", "Speedway"},
	"Coffee Shops":       {"Starbucks", "Dunkin'", "Peet's Coffee", "Dutch Bros", "Blue Bottle"},
	"Department Stores":  {"Target", "Walmart", "Macy's", "Nordstrom", "Kohl's", "JCPenney"},
	"Electronics Stores": {"Best Buy", "Apple Store", "Micro Center", "B&H Photo"},
	"Pharmacies":         {"CVS", "Walgreens", "Rite Aid", "Duane Reade"},
	"Fast Food":          {"McDonald's", "Burger King", "Wendy's", "Taco Bell", "Chick-fil-A", "Subway"},
	"Online Shopping":    {"Amazon", "eBay", "Etsy", "Shopify Store", "Wayfair"},
	"Streaming Services": {"Netflix", "Spotify", "Apple Music", "Disney+", "HBO Max"},
	"Utilities":          {"City Power", "Water Utility", "Gas Company", "Electric Co"},
	"Insurance":          {"State Farm", "Geico", "Progressive", "Allstate"},
	"Hotels":             {"Marriott", "Hilton", "Hyatt", "Holiday Inn", "Best Western"},
	"Airlines":           {"Delta", "United", "American Airlines", "Southwest", "JetBlue"},
	"Clothing Stores":    {"H&M", "Zara", "Gap", "Old Navy", "Uniqlo", "Nike"},
	"Fitness":            {"Planet Fitness", "LA Fitness", "24 Hour Fitness", "Equinox", "CrossFit"},
	"Entertainment":      {"AMC Theatres", "Regal Cinemas", "Dave & Buster's", "TopGolf"},
	"Auto Services":      {"Jiffy Lube", "Pep Boys", "AutoZone", "Firestone"},
	"Home Improvement":   {"Home Depot", "Lowe's", "Ace Hardware", "Menards"},
	"Pet Stores":         {"PetSmart", "Petco", "Pet Supplies Plus", "Chewy"},
}

// FallbackMerchantName is used when a category has no name pool.
const FallbackMerchantName = "Local Store"

// HighRiskBrands is the small pool a 2%-chance high-risk merchant is
// renamed to at creation time.
var HighRiskBrands = []string{
	"Crypto ATM",
	"Online Casino",
	"Wire Transfer",
	"Gift Card Kiosk",
}

// HighRiskMerchants is the wider pool the merchant_risk anomaly archetype
// draws replacement names from.
var HighRiskMerchants = []string{
	"Crypto ATM",
	"Online Casino",
	"Wire Transfer Services",
	"Gift Card Kiosk",
	"Offshore Gambling",
	"Money Order Services",
	"Foreign Exchange",
	"Virtual Currency Exchange",
}

// UnusualCategory fixes the merchant name prefix and MCC used when a record
// is rewritten into a category the customer never shops in.
type UnusualCategory struct {
	Name         string
	MerchantName string
	MCC          string
}

// UnusualCategories is the pool for the category anomaly archetype.
var UnusualCategories = []UnusualCategory{
	{"Gambling", "Casino", "7995"},
	{"Adult Entertainment", "Entertainment Venue", "7273"},
	{"Cryptocurrency", "Crypto Exchange", "6051"},
	{"Wire Transfers", "Wire Services", "4829"},
	{"Money Orders", "Pawn Shop", "5933"},
	{"Pawn Shops", "Pawn Shop", "5933"},
}

// Pools used by the amount anomaly archetype to dress a record up as a
// plausible big-ticket purchase.
var (
	LuxuryCategories = []string{"Electronics Stores", "Jewelry Stores", "Luxury Goods"}
	LuxuryMerchants  = []string{"High-Value Electronics", "Premium Jewelers", "Luxury Outlet", "Designer Store"}
)

// VelocityCategories is the pool of categories rapid-fire purchases are
// rewritten into.
var VelocityCategories = []string{"Online Shopping", "Gift Cards", "Electronics Stores"}

// OnlineCategories always produce online transactions.
var OnlineCategories = map[string]bool{
	"Online Shopping":    true,
	"Streaming Services": true,
}
