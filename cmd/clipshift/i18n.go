// Package main provides localization for the clipshift CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Reframe horizontal gameplay clips into vertical short-form video": "横型のゲームプレイクリップを縦型ショート動画に変換",

		// Process command
		"Reframe one clip into a vertical MP4":                   "クリップを縦型MP4に変換",
		"Broadcaster label stamped onto the output":              "出力に重ねる配信者ラベル",
		"YAML configuration file path":                           "YAML設定ファイルのパス",
		"x264 quality target (lower is better)":                  "x264品質ターゲット（低いほど高品質）",
		"x264 speed/quality preset":                              "x264速度/品質プリセット",
		"Face cascade file path (falls back to PIGO_CASCADE env)": "顔検出カスケードファイルのパス（未指定時はPIGO_CASCADE環境変数）",
		"TTF font path for the label badge":                      "ラベルバッジ用TTFフォントのパス",
		"Logo image path for the badge":                          "バッジ用ロゴ画像のパス",
		"Save intermediate detection and frame artifacts":        "検出とフレームの中間成果物を保存",
		"Directory for debug artifacts":                          "デバッグ成果物の出力ディレクトリ",
		"Log level (debug, info, warn, error)":                   "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                "全てのログ出力を抑制",
		"process requires INPUT and OUTPUT arguments":            "processにはINPUTとOUTPUTの引数が必要です",

		// Inspect command
		"Print stream facts of a produced MP4": "生成されたMP4のストリーム情報を表示",
		"inspect requires a FILE argument":     "inspectにはFILE引数が必要です",

		// Runtime
		"Interrupted, shutting down...": "中断されました。終了しています...",
	})
}
