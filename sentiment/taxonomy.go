package sentiment

// The seven coverage categories for Tesla news. Every classified item lands
// in exactly one.
const (
	CategoryFinancial  = "Financial & Operational"
	CategoryProduct    = "Product & Technology"
	CategoryStrategic  = "Strategic & Expansion"
	CategoryManagement = "Management & Governance"
	CategoryPolicy     = "Policy & Regulatory"
	CategoryMarket     = "Market & Sentiment"
	CategoryMacro      = "Macro & External"
)

func Categories() []string {
	return []string{
		CategoryFinancial,
		CategoryProduct,
		CategoryStrategic,
		CategoryManagement,
		CategoryPolicy,
		CategoryMarket,
		CategoryMacro,
	}
}

// categoryKeywords drive the cheap first-pass classifier. Keywords are
// matched as lower-case substrings; multi-word entries match as phrases.
var categoryKeywords = map[string][]string{
	CategoryFinancial: {
		"earnings", "revenue", "deliveries", "delivery numbers", "margin",
		"production", "guidance", "profit", "quarterly", "q1", "q2", "q3", "q4",
		"eps", "cash flow", "gross margin", "units produced",
	},
	CategoryProduct: {
		"fsd", "full self-driving", "autopilot", "cybertruck", "model 3",
		"model y", "model s", "model x", "roadster", "semi", "battery",
		"4680", "robotaxi", "cybercab", "optimus", "software update",
		"supercharger", "charging network", "autonomy",
	},
	CategoryStrategic: {
		"gigafactory", "giga berlin", "giga texas", "giga shanghai", "factory",
		"expansion", "partnership", "acquisition", "new plant", "new market",
		"joint venture", "licensing", "capacity",
	},
	CategoryManagement: {
		"musk", "elon", "ceo", "board", "executive", "compensation",
		"pay package", "resignation", "leadership", "shareholder vote",
		"governance", "succession",
	},
	CategoryPolicy: {
		"nhtsa", "recall", "regulation", "regulator", "tariff", "subsidy",
		"tax credit", "ev credit", "investigation", "probe", "sec", "doj",
		"lawsuit", "settlement", "safety review",
	},
	CategoryMarket: {
		"stock", "shares", "price target", "analyst", "upgrade", "downgrade",
		"short interest", "rally", "selloff", "sell-off", "valuation",
		"overweight", "underweight", "institutional", "options", "calls", "puts",
	},
	CategoryMacro: {
		"interest rate", "inflation", "fed", "federal reserve", "economy",
		"recession", "china", "europe", "competition", "byd", "rivian",
		"lucid", "oil price", "lithium", "supply chain", "ev demand",
	},
}
