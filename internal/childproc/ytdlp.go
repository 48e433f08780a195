package childproc

import "os/exec"

// YtdlpPath is the resolved path to the yt-dlp binary, overridable for
// tests and for installs where it isn't at the conventional location.
var YtdlpPath = "yt-dlp"

// YtdlpCommand builds the exact child invocation from spec.md §6:
//
//	yt-dlp --progress --progress-template='download:DOWNLOAD|...' \
//	    -O 'after_move:MOVED|...' -O 'video:START|...' --newline -q -- <url>
//
// ported from original_source/src/ytdlp.rs::ytdlp_command.
func YtdlpCommand(url string) *exec.Cmd {
	const progressTemplate = "download:DOWNLOAD|%(progress.downloaded_bytes)d|" +
		"%(progress.total_bytes,progress.total_bytes_estimate)d|" +
		"%(progress.fragment_index)d|%(progress.fragment_count)d|"
	const movedTemplate = "after_move:MOVED|%(title,alt_title,fulltitle,filename)s"
	const startTemplate = "video:START|%(title,alt_title,fulltitle,filename)s"

	return exec.Command(YtdlpPath,
		"--progress",
		"--progress-template="+progressTemplate,
		"-O", movedTemplate,
		"-O", startTemplate,
		"--newline",
		"-q",
		"--",
		url,
	)
}
