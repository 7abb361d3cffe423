package repos

import "github.com/petuhovskiy/soundpool/internal/models"

type SplashSaverArgs struct {
	Node *string
}

func (a *SplashSaverArgs) Apply(s *models.Splash) {
	if s.Node == "" && a.Node != nil {
		s.Node = *a.Node
	}
}

// SplashSaver fills in node-wide fields and saves splashes.
type SplashSaver struct {
	repo *SplashRepo
	args SplashSaverArgs
}

func NewSplashSaver(repo *SplashRepo, args SplashSaverArgs) *SplashSaver {
	return &SplashSaver{
		repo: repo,
		args: args,
	}
}

func (s *SplashSaver) Save(splash *models.Splash) error {
	s.args.Apply(splash)
	return s.repo.Save(splash)
}
