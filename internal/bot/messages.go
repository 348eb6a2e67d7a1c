package bot

// Chat texts. The welcome message is HTML (it carries a tg://user mention),
// the help message is legacy Markdown, everything else is plain text.
const (
	welcomeTemplate = "👋 Hello %s!\n\n" +
		"I'm your video downloading bot.\n" +
		"Use <code>/download &lt;URL&gt; [START_TIME] [END_TIME]</code> to fetch a video or a segment.\n" +
		"Times are optional (e.g., <code>MM:SS</code> or <code>HH:MM:SS</code>).\n\n" +
		"Example (full video): <code>/download https://www.youtube.com/watch?v=your_video_id</code>\n" +
		"Example (segment): <code>/download https://www.youtube.com/watch?v=your_video_id 00:10 00:50</code>\n\n" +
		"Type /help for more detailed information."

	helpText = "ℹ️ *How to use me:*\n" +
		"Use the /download command followed by a video URL.\n" +
		"You can optionally specify a start and/or end time for the segment.\n\n" +
		"*Formats:*\n" +
		"1. `/download <VIDEO_URL>`\n" +
		"   Downloads the full video.\n\n" +
		"2. `/download <VIDEO_URL> <START_TIME>`\n" +
		"   Downloads from `START_TIME` to the end of the video.\n" +
		"   Example: `/download <url> 01:20` (starts at 1 min 20 secs)\n\n" +
		"3. `/download <VIDEO_URL> <START_TIME> <END_TIME>`\n" +
		"   Downloads the segment between `START_TIME` and `END_TIME`.\n" +
		"   Example: `/download <url> 00:30 02:15`\n\n" +
		"Time format can be `MM:SS` or `HH:MM:SS` (e.g., `1:23` or `00:01:23`).\n" +
		"Use `0` or `00:00` for the beginning if specifying an end time only (e.g. `/download <url> 0 00:55`).\n\n" +
		"I use `yt-dlp`, which supports hundreds of websites. Common ones include YouTube, " +
		"Vimeo, Twitter, Facebook, Instagram, and many more.\n\n" +
		"Telegram bots can only send files up to 50MB, so I'll try to select a video quality " +
		"that fits this limit. If a video is too large, I might not be able to send it."

	msgUsage          = "⚠️ URL missing. Usage: /download <URL> [start] [end]"
	msgBadURL         = "⚠️ That doesn't look like a valid URL. Please send a direct link to a video."
	msgBadTimestamp   = "⚠️ Invalid time format. Use HH:MM:SS, MM:SS or plain seconds (e.g. 1:23 or 90)."
	msgBadRange       = "⚠️ Invalid range: the start time must be before the end time."
	msgUnknownCommand = "🤔 I don't know that command. Type /help to see what I can do."

	msgProcessing     = "🔍 Got your link! Processing and trying to download the video..."
	msgProgressFmt    = "Downloading...\nProgress: %s%%"
	msgUploading      = "✅ Download complete! Now uploading to Telegram..."
	captionFmt        = "🎬 Here's your video!\nOriginal URL: %s"
	msgUploadFailed   = "❌ Failed to upload video to Telegram: %v"
	msgUnexpected     = "❌ An unexpected error occurred. Please try again later."
	msgDownloadFailed = "❌ Download failed or no file was produced. Please check the URL or try again."
	msgTooLarge       = "⚠️ The downloaded video is too large for me to send via Telegram (max ~50MB). I tried to get a smaller version."
)
