package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Processing %s -> %s":                     "%s を %s へ処理中",
		"Face detected, using split layout":       "顔を検出しました。分割レイアウトを使用します",
		"No face detected, using blurred layout":  "顔を検出できませんでした。ぼかしレイアウトを使用します",
		"Processed %d frames...":                  "%d フレームを処理しました...",
		"Done: %s (%d frames)":                    "完了: %s (%d フレーム)",
		"Processing failed: %s":                   "処理に失敗しました: %s",
	})
}
