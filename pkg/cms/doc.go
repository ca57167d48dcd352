// Package cms provides the content layer behind the marketing site: blog
// posts, hero slides and uploaded media assets.
//
// A single Service interface orchestrates slug assignment, the draft and
// published workflow for posts, paginated listing, search and the media
// ingest pipeline. Entity stores (memory, Postgres, MongoDB) and asset hosts
// (memory, filesystem, S3, GCS) are provided under subpackages and plugged in
// with functional options.
//
// # Slugs
//
// Slugs are derived from titles with GenerateSlug and made unique with
// EnsureUniqueSlug. Every store also enforces uniqueness at write time; a
// write that loses a race is reported as ErrSlugConflict and the service
// re-resolves the slug a bounded number of times before giving up.
package cms
