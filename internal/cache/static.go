package cache

// Hashes of emitted static assets, keyed by output path. The presentation
// templates use them for cache busting.
var staticCache = NewCache[string, string]()

func GetStaticHash(path string) (string, bool) {
	return staticCache.Get(path)
}

func SetStaticHash(path, hash string) {
	staticCache.Set(path, hash)
}
