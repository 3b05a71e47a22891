package service

import (
	"github.com/sirupsen/logrus"
)

// 各サービスに共通のリクエスト単位の情報。
type Service struct {
	Log *logrus.Entry
}

func (s *Service) logger() *logrus.Entry {
	if s == nil || s.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return s.Log
}
