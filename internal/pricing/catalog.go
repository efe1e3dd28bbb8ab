package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// Catalog returns the default stock universe seeded into an empty
// database. Each call returns fresh values that callers may mutate.
func Catalog() []*models.Stock {
	d := decimal.RequireFromString
	stocks := []*models.Stock{
		{
			Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Industry: "Consumer Electronics",
			Description: "Designs, manufactures, and markets smartphones, personal computers, tablets, wearables, and accessories.",
			CurrentPrice: d("178.50"), PreviousClose: d("177.25"), DayHigh: d("180.00"), DayLow: d("176.50"),
			Volume: 65000000, MarketCap: 2800000000000, PERatio: d("29.5"), DividendYield: d("0.52"),
			FiftyTwoWeekHigh: d("198.23"), FiftyTwoWeekLow: d("164.08"),
		},
		{
			Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology", Industry: "Software",
			Description: "Develops, licenses, and supports software, services, devices, and solutions worldwide.",
			CurrentPrice: d("378.25"), PreviousClose: d("375.50"), DayHigh: d("380.00"), DayLow: d("374.00"),
			Volume: 28000000, MarketCap: 2810000000000, PERatio: d("34.2"), DividendYield: d("0.78"),
			FiftyTwoWeekHigh: d("384.30"), FiftyTwoWeekLow: d("309.45"),
		},
		{
			Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology", Industry: "Internet Services",
			Description: "Provides various products and platforms including search, advertising, cloud computing, and hardware.",
			CurrentPrice: d("141.80"), PreviousClose: d("140.25"), DayHigh: d("143.50"), DayLow: d("139.80"),
			Volume: 32000000, MarketCap: 1780000000000, PERatio: d("26.8"), DividendYield: d("0"),
			FiftyTwoWeekHigh: d("152.05"), FiftyTwoWeekLow: d("120.21"),
		},
		{
			Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Cyclical", Industry: "Internet Retail",
			Description: "Engages in e-commerce, cloud computing, digital streaming, and artificial intelligence.",
			CurrentPrice: d("178.35"), PreviousClose: d("176.90"), DayHigh: d("180.25"), DayLow: d("175.50"),
			Volume: 45000000, MarketCap: 1850000000000, PERatio: d("68.5"), DividendYield: d("0"),
			FiftyTwoWeekHigh: d("188.65"), FiftyTwoWeekLow: d("118.35"),
		},
		{
			Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Technology", Industry: "Social Media",
			Description: "Builds technologies that help people connect through mobile devices, personal computers, and other surfaces.",
			CurrentPrice: d("484.20"), PreviousClose: d("481.50"), DayHigh: d("488.00"), DayLow: d("479.30"),
			Volume: 18000000, MarketCap: 1230000000000, PERatio: d("28.9"), DividendYield: d("0"),
			FiftyTwoWeekHigh: d("542.81"), FiftyTwoWeekLow: d("279.44"),
		},
		{
			Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Consumer Cyclical", Industry: "Auto Manufacturers",
			Description: "Designs, develops, manufactures, and sells fully electric vehicles and energy generation and storage systems.",
			CurrentPrice: d("242.80"), PreviousClose: d("238.45"), DayHigh: d("245.60"), DayLow: d("237.20"),
			Volume: 98000000, MarketCap: 772000000000, PERatio: d("76.4"), DividendYield: d("0"),
			FiftyTwoWeekHigh: d("299.29"), FiftyTwoWeekLow: d("152.37"),
		},
		{
			Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology", Industry: "Semiconductors",
			Description: "Provides graphics, computing, and networking solutions including GPUs and chips for AI.",
			CurrentPrice: d("878.25"), PreviousClose: d("865.40"), DayHigh: d("885.00"), DayLow: d("862.30"),
			Volume: 42000000, MarketCap: 2170000000000, PERatio: d("71.3"), DividendYield: d("0.03"),
			FiftyTwoWeekHigh: d("974.00"), FiftyTwoWeekLow: d("394.00"),
		},
		{
			Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financial Services", Industry: "Banking",
			Description: "Financial holding company that provides various financial services worldwide.",
			CurrentPrice: d("198.45"), PreviousClose: d("196.80"), DayHigh: d("200.20"), DayLow: d("195.50"),
			Volume: 12000000, MarketCap: 576000000000, PERatio: d("11.2"), DividendYield: d("2.24"),
			FiftyTwoWeekHigh: d("208.96"), FiftyTwoWeekLow: d("135.19"),
		},
		{
			Symbol: "BAC", Name: "Bank of America Corp.", Sector: "Financial Services", Industry: "Banking",
			Description: "Provides banking and financial products and services for individual consumers, businesses, and institutions.",
			CurrentPrice: d("40.85"), PreviousClose: d("40.45"), DayHigh: d("41.20"), DayLow: d("40.30"),
			Volume: 38000000, MarketCap: 314000000000, PERatio: d("12.8"), DividendYield: d("2.64"),
			FiftyTwoWeekHigh: d("42.75"), FiftyTwoWeekLow: d("26.92"),
		},
		{
			Symbol: "V", Name: "Visa Inc.", Sector: "Financial Services", Industry: "Credit Services",
			Description: "Operates retail electronic payments network worldwide.",
			CurrentPrice: d("282.60"), PreviousClose: d("280.15"), DayHigh: d("284.50"), DayLow: d("279.20"),
			Volume: 6500000, MarketCap: 568000000000, PERatio: d("32.1"), DividendYield: d("0.74"),
			FiftyTwoWeekHigh: d("290.96"), FiftyTwoWeekLow: d("227.83"),
		},
		{
			Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare", Industry: "Drug Manufacturers",
			Description: "Researches, develops, manufactures, and sells various products in healthcare field.",
			CurrentPrice: d("156.80"), PreviousClose: d("155.40"), DayHigh: d("158.20"), DayLow: d("154.90"),
			Volume: 8200000, MarketCap: 379000000000, PERatio: d("24.7"), DividendYield: d("3.05"),
			FiftyTwoWeekHigh: d("168.85"), FiftyTwoWeekLow: d("143.13"),
		},
		{
			Symbol: "UNH", Name: "UnitedHealth Group Inc.", Sector: "Healthcare", Industry: "Healthcare Plans",
			Description: "Provides health care coverage, software, and data consultancy services.",
			CurrentPrice: d("524.30"), PreviousClose: d("518.75"), DayHigh: d("528.50"), DayLow: d("516.20"),
			Volume: 2800000, MarketCap: 484000000000, PERatio: d("28.3"), DividendYield: d("1.32"),
			FiftyTwoWeekHigh: d("562.00"), FiftyTwoWeekLow: d("445.68"),
		},
		{
			Symbol: "PFE", Name: "Pfizer Inc.", Sector: "Healthcare", Industry: "Drug Manufacturers",
			Description: "Discovers, develops, manufactures, and sells healthcare products worldwide.",
			CurrentPrice: d("28.45"), PreviousClose: d("28.10"), DayHigh: d("28.85"), DayLow: d("27.95"),
			Volume: 42000000, MarketCap: 160000000000, PERatio: d("9.8"), DividendYield: d("5.91"),
			FiftyTwoWeekHigh: d("33.06"), FiftyTwoWeekLow: d("25.20"),
		},
		{
			Symbol: "WMT", Name: "Walmart Inc.", Sector: "Consumer Defensive", Industry: "Discount Stores",
			Description: "Engages in retail and wholesale operations worldwide.",
			CurrentPrice: d("73.85"), PreviousClose: d("72.90"), DayHigh: d("74.50"), DayLow: d("72.40"),
			Volume: 12000000, MarketCap: 598000000000, PERatio: d("32.5"), DividendYield: d("1.24"),
			FiftyTwoWeekHigh: d("75.55"), FiftyTwoWeekLow: d("49.85"),
		},
		{
			Symbol: "KO", Name: "The Coca-Cola Company", Sector: "Consumer Defensive", Industry: "Beverages",
			Description: "Manufactures, markets, and sells various nonalcoholic beverages worldwide.",
			CurrentPrice: d("62.30"), PreviousClose: d("61.85"), DayHigh: d("62.80"), DayLow: d("61.50"),
			Volume: 16000000, MarketCap: 270000000000, PERatio: d("26.4"), DividendYield: d("2.89"),
			FiftyTwoWeekHigh: d("65.35"), FiftyTwoWeekLow: d("51.55"),
		},
		{
			Symbol: "MCD", Name: "McDonald's Corporation", Sector: "Consumer Cyclical", Industry: "Restaurants",
			Description: "Operates and franchises McDonald's restaurants worldwide.",
			CurrentPrice: d("294.50"), PreviousClose: d("292.80"), DayHigh: d("296.20"), DayLow: d("291.40"),
			Volume: 2800000, MarketCap: 214000000000, PERatio: d("25.1"), DividendYield: d("2.17"),
			FiftyTwoWeekHigh: d("302.39"), FiftyTwoWeekLow: d("245.73"),
		},
		{
			Symbol: "XOM", Name: "Exxon Mobil Corporation", Sector: "Energy", Industry: "Oil & Gas",
			Description: "Engages in the exploration and production of crude oil and natural gas.",
			CurrentPrice: d("116.75"), PreviousClose: d("115.20"), DayHigh: d("118.50"), DayLow: d("114.80"),
			Volume: 18000000, MarketCap: 468000000000, PERatio: d("13.2"), DividendYield: d("3.12"),
			FiftyTwoWeekHigh: d("124.45"), FiftyTwoWeekLow: d("95.77"),
		},
		{
			Symbol: "CVX", Name: "Chevron Corporation", Sector: "Energy", Industry: "Oil & Gas",
			Description: "Engages in integrated energy and chemicals operations worldwide.",
			CurrentPrice: d("162.40"), PreviousClose: d("160.85"), DayHigh: d("164.20"), DayLow: d("159.50"),
			Volume: 9500000, MarketCap: 298000000000, PERatio: d("14.7"), DividendYield: d("3.45"),
			FiftyTwoWeekHigh: d("172.25"), FiftyTwoWeekLow: d("135.37"),
		},
		{
			Symbol: "DIS", Name: "The Walt Disney Company", Sector: "Communication Services", Industry: "Entertainment",
			Description: "Operates as an entertainment company worldwide.",
			CurrentPrice: d("113.45"), PreviousClose: d("111.80"), DayHigh: d("115.20"), DayLow: d("110.90"),
			Volume: 12000000, MarketCap: 207000000000, PERatio: d("38.6"), DividendYield: d("0"),
			FiftyTwoWeekHigh: d("123.74"), FiftyTwoWeekLow: d("78.73"),
		},
		{
			Symbol: "NFLX", Name: "Netflix Inc.", Sector: "Communication Services", Industry: "Entertainment",
			Description: "Provides entertainment services with TV series, documentaries, and films.",
			CurrentPrice: d("638.50"), PreviousClose: d("632.10"), DayHigh: d("645.80"), DayLow: d("628.40"),
			Volume: 4200000, MarketCap: 274000000000, PERatio: d("44.3"), DividendYield: d("0"),
			FiftyTwoWeekHigh: d("697.49"), FiftyTwoWeekLow: d("344.73"),
		},
	}
	for _, s := range stocks {
		s.Active = true
	}
	return stocks
}
