package app

import (
	"strings"
	"time"

	"github.com/samvad-hq/cryptonews-reader/internal/domain"
)

func paragraphs(p ...string) string { return strings.Join(p, "\n\n") }

// SampleArticles returns the bundled articles shown before the first live
// fetch and whenever it fails. They are published now, -1h, -2h and -3h.
func SampleArticles(now time.Time) []domain.Article {
	return []domain.Article{
		{
			ID:          1,
			Title:       "Bitcoin Surges Past $50,000 as Institutional Interest Grows",
			Slug:        "bitcoin-surges",
			PublishedAt: now,
			URL:         "https://example.com/bitcoin-surge",
			Currencies:  []domain.Currency{{Code: "BTC", Title: "Bitcoin", Slug: "bitcoin"}},
			Domain:      "example.com",
			Votes: domain.Votes{
				Positive: 42, Negative: 0, Important: 10, Liked: 38, Disliked: 2,
				Funny: 0, Toxic: 0, Saved: 15, Comments: 8,
			},
			Metadata: domain.Metadata{
				Description: paragraphs(
					"Bitcoin has surged past $50,000 for the first time since December 2021, as institutional investors continue to show strong interest in the cryptocurrency market. The milestone comes as several major financial institutions announce new Bitcoin investment products and services.",
					"Analysts attribute the price increase to growing institutional adoption and the upcoming Bitcoin halving event. Market data shows significant accumulation by both retail and institutional investors, with exchange outflows reaching new highs.",
					"The surge has also positively impacted the broader cryptocurrency market, with several altcoins seeing double-digit percentage gains. Trading volumes across major exchanges have increased substantially, indicating renewed market interest.",
				),
				Image:       "https://images.unsplash.com/photo-1518546305927-5a555bb7020d?w=1200",
				Author:      "Sarah Johnson",
				ReadingTime: "5 min read",
				Tags:        []string{"Bitcoin", "Cryptocurrency", "Market Analysis", "Institutional Investment"},
			},
		},
		{
			ID:          2,
			Title:       "Ethereum 2.0 Upgrade Shows Strong Progress in Testing Phase",
			Slug:        "ethereum-2-progress",
			PublishedAt: now.Add(-1 * time.Hour),
			URL:         "https://example.com/ethereum-2-progress",
			Currencies:  []domain.Currency{{Code: "ETH", Title: "Ethereum", Slug: "ethereum"}},
			Domain:      "example.com",
			Votes: domain.Votes{
				Positive: 35, Negative: 2, Important: 8, Liked: 30, Disliked: 2,
				Funny: 0, Toxic: 0, Saved: 12, Comments: 5,
			},
			Metadata: domain.Metadata{
				Description: paragraphs(
					"The Ethereum 2.0 upgrade continues to show promising results in its testing phase, with developers reporting significant improvements in scalability and energy efficiency. The latest testnet data reveals a 99% reduction in energy consumption and transaction costs.",
					"Staking participation has reached an all-time high, with over 500,000 validators securing the network. The development team has successfully implemented several crucial protocol improvements, including enhanced validator performance and reduced network congestion.",
					"The upgrade's success has attracted attention from enterprise users, with several major companies announcing plans to build on the Ethereum network. The community response has been overwhelmingly positive, with developers praising the improved tooling and documentation.",
				),
				Image:       "https://images.unsplash.com/photo-1622630998477-20aa696ecb05?w=1200",
				Author:      "Michael Chen",
				ReadingTime: "7 min read",
				Tags:        []string{"Ethereum", "Blockchain", "Technology", "Cryptocurrency"},
			},
		},
		{
			ID:          3,
			Title:       "Cardano Launches New DeFi Protocol, ADA Price Surges",
			Slug:        "cardano-defi-launch",
			PublishedAt: now.Add(-2 * time.Hour),
			URL:         "https://example.com/cardano-defi",
			Currencies:  []domain.Currency{{Code: "ADA", Title: "Cardano", Slug: "cardano"}},
			Domain:      "example.com",
			Votes: domain.Votes{
				Positive: 28, Negative: 1, Important: 5, Liked: 25, Disliked: 1,
				Funny: 0, Toxic: 0, Saved: 8, Comments: 3,
			},
			Metadata: domain.Metadata{
				Description: paragraphs(
					"Cardano's ecosystem expands with the launch of a new DeFi protocol, leading to a significant price increase for ADA as traders react to the news. The protocol introduces innovative features for decentralized lending and borrowing, with built-in security measures to protect users.",
					"The launch has been accompanied by comprehensive security audits and gradual rollout phases to ensure system stability. Early adoption metrics show strong user engagement, with over $100 million in total value locked within the first 24 hours.",
					"The development team has emphasized the protocol's focus on regulatory compliance and sustainable growth, setting it apart from competitors in the DeFi space. Community feedback has highlighted the user-friendly interface and transparent documentation.",
				),
				Image:       "https://images.unsplash.com/photo-1621761191319-c6fb62004040?w=1200",
				Author:      "Elena Rodriguez",
				ReadingTime: "6 min read",
				Tags:        []string{"Cardano", "DeFi", "Blockchain", "Cryptocurrency"},
			},
		},
		{
			ID:          4,
			Title:       "New Regulatory Framework Proposed for Cryptocurrency Trading",
			Slug:        "crypto-regulations",
			PublishedAt: now.Add(-3 * time.Hour),
			URL:         "https://example.com/crypto-regulations",
			Currencies:  []domain.Currency{{Code: "BTC", Title: "Bitcoin", Slug: "bitcoin"}, {Code: "ETH", Title: "Ethereum", Slug: "ethereum"}},
			Domain:      "example.com",
			Votes: domain.Votes{
				Positive: 45, Negative: 5, Important: 15, Liked: 40, Disliked: 5,
				Funny: 0, Toxic: 0, Saved: 20, Comments: 12,
			},
			Metadata: domain.Metadata{
				Description: paragraphs(
					"Global financial regulators have proposed a new framework for cryptocurrency trading, aiming to create a balanced approach between innovation and consumer protection. The proposal includes guidelines for exchange operations, custody services, and DeFi protocols.",
					"The framework emphasizes transparency requirements, capital reserves, and regular auditing procedures. Industry leaders have generally responded positively, noting that clear regulations could encourage institutional participation.",
					"Implementation timelines and specific requirements vary by jurisdiction, with some countries planning to adopt the framework by early next year. The proposal also addresses environmental concerns related to crypto mining and suggests incentives for sustainable practices.",
				),
				Image:       "https://images.unsplash.com/photo-1605792657660-596af9009e82?w=1200",
				Author:      "Robert Williams",
				ReadingTime: "8 min read",
				Tags:        []string{"Regulation", "Cryptocurrency", "Policy", "Global Markets"},
			},
		},
	}
}
