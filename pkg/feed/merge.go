package feed

import "newsdigest/pkg/news"

// Merge folds a fetched page into the accumulated list. Page 1 replaces the
// list. Later pages append, in fetch order, only the articles whose URL and
// title both differ from everything already accumulated.
func Merge(acc []news.Article, page int, incoming []news.Article) []news.Article {
	if page <= 1 {
		return append([]news.Article(nil), incoming...)
	}

	urls := make(map[string]struct{}, len(acc)+len(incoming))
	titles := make(map[string]struct{}, len(acc)+len(incoming))
	for _, a := range acc {
		urls[a.URL] = struct{}{}
		titles[a.Title] = struct{}{}
	}

	merged := append([]news.Article(nil), acc...)
	for _, a := range incoming {
		_, seenURL := urls[a.URL]
		_, seenTitle := titles[a.Title]
		if seenURL || seenTitle {
			continue
		}
		urls[a.URL] = struct{}{}
		titles[a.Title] = struct{}{}
		merged = append(merged, a)
	}

	return merged
}
