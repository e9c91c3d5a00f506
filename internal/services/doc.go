// Package services implements the two external collaborators of the refresh pipeline.
//
// # Catalog
//
// [YtdlpService] implements [Catalog] by shelling out to yt-dlp:
//   - ListPlaylist : yt-dlp --flat-playlist --dump-single-json <playlist>
//   - Probe : yt-dlp --simulate <video>
//   - Search : yt-dlp --flat-playlist --dump-single-json "ytsearchN:<query>"
//
// yt-dlp exits non-zero both when a video is gone and when the network failed, so Probe classifies
// the error lines on stderr. Network failures become [shared.ErrProbeInconclusive]; everything else
// reported as an ERROR is a confirmed [UnavailableError].
//
// # History
//
// [WaybackService] implements [History] against the Internet Archive:
//   - Snapshots : CDX API (output=json, fields original,timestamp,statuscode)
//   - SnapshotContent : raw memento at /web/{timestamp}id_/{url}
//
// Requests share a [rate.Limiter] so that a batch of resolutions does not hammer the archive.
//
// [PageTitle] extracts the <title> of an archived page with goquery.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrPlaylistListing] : Playlist could not be listed (fatal for a run)
//   - [shared.ErrProbeInconclusive] : Availability unknown
//   - [shared.ErrSearchFailed] : Search call failed
//   - [shared.ErrHistoryUnreachable] : Archive request failed
package services
