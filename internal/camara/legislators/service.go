package legislators

import (
	"context"
	"strconv"
	"strings"

	"github.com/farxc/envelopa-camara/internal/camara/utils"
	"github.com/farxc/envelopa-camara/internal/logger"
	"github.com/farxc/envelopa-camara/internal/store"
)

// XMLGetter is satisfied by webservice.Client.
type XMLGetter interface {
	GetXML(ctx context.Context, path string, params map[string]string, dest any) error
}

// Service fetches each list once; later calls read the cached copy.
type Service struct {
	client    XMLGetter
	cache     *store.JSONCache
	appLogger *logger.Logger
}

func NewService(client XMLGetter, cache *store.JSONCache, appLogger *logger.Logger) *Service {
	if appLogger == nil {
		appLogger = logger.Discard()
	}
	return &Service{client: client, cache: cache, appLogger: appLogger}
}

func cached[T any](s *Service, name string, fetch func() ([]T, error)) ([]T, error) {
	const component = "Legislators"

	items, hit, err := store.LoadOrFetch(s.cache, name, fetch)
	if err != nil {
		return nil, err
	}
	if hit {
		s.appLogger.Debug(component, "Cache hit: name=%s items=%d", name, len(items))
	} else {
		s.appLogger.Info(component, "Fetched and cached: name=%s items=%d", name, len(items))
	}
	return items, nil
}

// Parties calls ObterPartidosCD.
func (s *Service) Parties(ctx context.Context) ([]Party, error) {
	return cached(s, "partidos", func() ([]Party, error) {
		var doc partiesDocument
		if err := s.client.GetXML(ctx, "/Deputados.asmx/ObterPartidosCD", nil, &doc); err != nil {
			return nil, err
		}

		parties := make([]Party, 0, len(doc.Parties))
		for _, p := range doc.Parties {
			parties = append(parties, Party{
				ID:        strings.TrimSpace(p.ID),
				Sigla:     strings.TrimSpace(p.Sigla),
				Name:      strings.TrimSpace(p.Name),
				CreatedOn: utils.ParseDate(p.CreatedOn),
				EndedOn:   utils.ParseDate(p.EndedOn),
			})
		}
		return parties, nil
	})
}

// Blocs calls ObterPartidosBlocoCD for one legislature.
func (s *Service) Blocs(ctx context.Context, legislature int) ([]Bloc, error) {
	name := "blocos_" + strconv.Itoa(legislature)
	return cached(s, name, func() ([]Bloc, error) {
		params := map[string]string{
			"idBloco":        "",
			"numLegislatura": strconv.Itoa(legislature),
		}

		var doc blocsDocument
		if err := s.client.GetXML(ctx, "/Deputados.asmx/ObterPartidosBlocoCD", params, &doc); err != nil {
			return nil, err
		}

		blocs := make([]Bloc, 0, len(doc.Blocs))
		for _, b := range doc.Blocs {
			bloc := Bloc{
				ID:        strings.TrimSpace(b.ID),
				Name:      strings.TrimSpace(b.Name),
				Sigla:     strings.TrimSpace(b.Sigla),
				CreatedOn: utils.ParseDate(b.CreatedOn),
				EndedOn:   utils.ParseDate(b.EndedOn),
				Parties:   make([]BlocParty, 0, len(b.Parties)),
			}
			for _, p := range b.Parties {
				bloc.Parties = append(bloc.Parties, BlocParty{
					ID:       strings.TrimSpace(p.ID),
					Sigla:    strings.TrimSpace(p.Sigla),
					Name:     strings.TrimSpace(p.Name),
					JoinedOn: utils.ParseDate(p.JoinedOn),
					LeftOn:   utils.ParseDate(p.LeftOn),
				})
			}
			blocs = append(blocs, bloc)
		}
		return blocs, nil
	})
}

// Benches calls ObterLideresBancadas.
func (s *Service) Benches(ctx context.Context) ([]Bench, error) {
	const component = "Legislators"

	return cached(s, "bancadas", func() ([]Bench, error) {
		var doc benchesDocument
		if err := s.client.GetXML(ctx, "/Deputados.asmx/ObterLideresBancadas", nil, &doc); err != nil {
			return nil, err
		}

		benches := make([]Bench, 0, len(doc.Benches))
		for _, b := range doc.Benches {
			bench := Bench{
				Sigla:           strings.TrimSpace(b.Sigla),
				Name:            strings.TrimSpace(b.Name),
				ViceLeaders:     []Leadership{},
				Representatives: []Leadership{},
			}
			for _, child := range b.Children {
				l := child.leadership()
				switch child.XMLName.Local {
				case "lider":
					bench.Leader = &l
				case "vice_lider":
					bench.ViceLeaders = append(bench.ViceLeaders, l)
				case "representante":
					bench.Representatives = append(bench.Representatives, l)
				default:
					s.appLogger.Warn(component, "Unexpected bench element: bench=%s element=%s", bench.Sigla, child.XMLName.Local)
				}
			}
			benches = append(benches, bench)
		}
		return benches, nil
	})
}

func (e leaderElement) leadership() Leadership {
	return Leadership{
		Name:           strings.TrimSpace(e.Name),
		RegistrationID: strings.TrimSpace(e.RegistrationID),
		Party:          strings.TrimSpace(e.Party),
		State:          strings.TrimSpace(e.State),
	}
}

// Deputies calls ObterDeputados, which lists the deputies currently in office.
func (s *Service) Deputies(ctx context.Context) ([]Deputy, error) {
	return cached(s, "deputados", func() ([]Deputy, error) {
		var doc deputiesDocument
		if err := s.client.GetXML(ctx, "/Deputados.asmx/ObterDeputados", nil, &doc); err != nil {
			return nil, err
		}

		deputies := make([]Deputy, 0, len(doc.Deputies))
		for _, d := range doc.Deputies {
			deputies = append(deputies, Deputy{
				RegistrationID:    strings.TrimSpace(d.RegistrationID),
				Condition:         strings.TrimSpace(d.Condition),
				Name:              strings.TrimSpace(d.Name),
				ParliamentaryName: strings.TrimSpace(d.ParliamentaryName),
				PhotoURL:          strings.TrimSpace(d.PhotoURL),
				Gender:            strings.TrimSpace(d.Gender),
				State:             strings.TrimSpace(d.State),
				Party:             strings.TrimSpace(d.Party),
				Office:            strings.TrimSpace(d.Office),
				Annex:             strings.TrimSpace(d.Annex),
				Phone:             strings.TrimSpace(d.Phone),
				Email:             strings.TrimSpace(d.Email),
			})
		}
		return deputies, nil
	})
}
