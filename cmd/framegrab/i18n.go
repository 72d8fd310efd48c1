// Package main provides localization for the framegrab CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Sampling":      "サンプリング",
		"Output":        "出力先",
		"Configuration": "設定",
		"Decoding":      "デコード",
		"Logging":       "ログ",

		// App
		"Extract every Nth frame of a video as JPEG files": "動画のNフレームごとにJPEGファイルとして保存",

		// Flags
		"Sampling interval: store every Nth frame":             "サンプリング間隔: Nフレームごとに保存",
		"Existing directory for frame<N>.jpg files":            "frame<N>.jpg を保存する既存のディレクトリ",
		"YAML configuration file":                              "YAML設定ファイル",
		"JPEG quality (1-100)":                                 "JPEG品質 (1-100)",
		"Downscale frames wider than this (0 = original size)": "この幅を超えるフレームを縮小 (0 = 元のサイズ)",
		"Draw the frame number on saved frames":                "保存するフレームにフレーム番号を描画",
		"Count frames without writing files":                   "ファイルを書き込まずにフレーム数のみ数える",
		"Decoding backend (auto, ffmpeg, mpeg)":                "デコードバックエンド (auto, ffmpeg, mpeg)",
		"Path to the ffmpeg binary":                            "ffmpegバイナリのパス",
		"Output execution summary to file (Markdown format)":   "実行サマリーをファイルに出力（Markdown形式）",
		"Log level (debug, info, warn, error)":                 "ログレベル (debug, info, warn, error)",
		"Suppress all log output":                              "すべてのログ出力を抑制",

		// Usage errors
		"expected one input video path, got %d arguments": "入力動画パスは1つだけ指定してください。%d 個の引数が指定されました",
	})
}
