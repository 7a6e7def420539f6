// Package fetch is the client for the paginated gacha log API.
//
// The API returns at most Size records per call, newest first. The next page
// is requested with end_id set to the id of the last record of the previous
// one. Every number in the reply is a JSON string and timestamps carry no
// zone, so Config.UTCOffsetHours decides how they are interpreted.
//
// An expired auth key is not an HTTP error: the API answers 200 with a
// retcode and no data. FetchPage reports that case as a nil page and a nil
// error so that callers can stop without failing. Transport failures,
// non-2xx codes and undecodable bodies are returned as errors.
//
// The item_type tag of each record is localized, so the lang parameter of
// the auth query is always replaced with Config.Lang, one of the languages
// catalog.ParseItemType understands. Pages hold at most MaxPageSize records.
//
// Delay implements the randomized wait the API's rate limit asks for.
package fetch
