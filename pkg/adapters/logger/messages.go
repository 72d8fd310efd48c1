package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run level messages (info)
		"Sampling every %d frames of %s":              "%[2]s を %[1]d フレームごとにサンプリングします",
		"Stored %d frames in %s":                      "%d フレームを %s に保存しました",
		"Dry run: %d frames would be written":         "ドライラン: %d フレームが保存対象です",
		"Summary saved to %s":                         "サマリーを %s に保存しました",
		"Interrupted, shutting down...":               "中断されました。シャットダウン中...",
		"Decoded %d frames in %s":                     "%d フレームを %s でデコードしました",
		"Video %s %dx%d, about %d frames at %.2f fps": "動画 %s %dx%d, 約 %d フレーム, %.2f fps",

		// Source selection (debug)
		"Container %s, using %s backend":             "コンテナ %s, %s バックエンドを使用",
		"Container probe failed, trying ffprobe: %s": "コンテナ解析に失敗したため ffprobe を試します: %s",
		"ffprobe failed: %s":                         "ffprobe に失敗しました: %s",

		// Sampler
		"Saved frame %d (source frame %d)":    "フレーム %d を保存しました (元フレーム %d)",
		"Stopped reading after %d frames: %s": "%d フレーム読み込み後に停止しました: %s",
		"Interrupted after %d frames":         "%d フレーム処理後に中断されました",

		// Errors
		"Invalid configuration: %s":   "設定が不正です: %s",
		"Failed to open %s: %s":       "%s を開けませんでした: %s",
		"Sampling failed: %s":         "サンプリングに失敗しました: %s",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
		"Failed to close source: %s":  "ソースのクローズに失敗しました: %s",
	})
}
