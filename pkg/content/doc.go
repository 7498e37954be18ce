// Package content loads the portfolio content: the manifest of articles and
// showcases, the markdown documents it points to, and the per-language
// experience and education records.
//
// # Sources
//
// Every read goes through a [Source]. [HTTPSource] reads a public base URL
// (an S3 website, raw Git hosting, or an ngrok tunnel); [StorageSource] reads
// a private bucket through pkg/storage.
//
// # Manifest
//
// An [IndexProvider] produces the [Index]: [DocumentIndex] reads a pre-built
// index.json, [ListingIndex] lists folders through a Git-hosted-content API.
// [IndexLoader] keeps the last good [Snapshot], refetches it once it is older
// than the staleness window, and keeps serving the previous snapshot when a
// refetch fails.
//
// # Localization
//
// A deployment uses exactly one [Strategy] for both kinds. [SuffixStrategy]
// reads the language from a ".<lang>.md" file suffix; [HeuristicStrategy]
// guesses it from the title. Lists are strict: an item appears only in its
// own language. Detail lookups fall back to another language and flag it.
//
// # Documents
//
// [Documents] fetches a markdown body the first time it is requested and
// keeps it for the life of the process. Failures are not cached.
package content
