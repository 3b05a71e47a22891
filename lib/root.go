package lib

import (
	"os"
	"path/filepath"
)

// データディレクトリを含むプロジェクトルートを返す。
//
// SERVER_ROOTが設定されていればそれを用い、なければ作業ディレクトリから親を辿って
// data/configを持つディレクトリを探す。見つからなければ作業ディレクトリ。
func ProjectRoot(marker string) string {
	if root := os.Getenv("SERVER_ROOT"); len(root) > 0 {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for dir := wd; ; {
		if info, e := os.Stat(filepath.Join(dir, marker)); e == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return wd
}
