// Package cookie reads and writes plain cookies with shared attributes.
//
// The site stores one small preference (the visitor language) that must
// survive across visits, so only unsigned cookies are supported:
//
//	m := cookie.New(cookie.WithSecure(true))
//	m.Set(w, "preferred-language", "fr", cookie.OneYear)
//	lang, err := m.Get(r, "preferred-language")
package cookie
