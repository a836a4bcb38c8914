package validation

import (
	"fmt"
	"log"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"basstatic/internal/models"
)

var eventStatuses = []interface{}{models.StatusDraft, models.StatusPublished, models.StatusPast}

// ValidateEvent проверяет одно событие документа
func ValidateEvent(ev *models.Event) error {
	return validation.ValidateStruct(ev,
		validation.Field(&ev.ID, validation.Required, validation.Min(int64(1))),
		// тип открытый: неизвестные варианты сохраняются как есть
		validation.Field(&ev.Type, validation.Required),
		validation.Field(&ev.Status, validation.Required, validation.In(eventStatuses...)),
		validation.Field(&ev.Title, validation.Required),
		validation.Field(&ev.Artists, validation.Each(validation.By(artistHasName))),
		validation.Field(&ev.MC, validation.Each(validation.By(artistHasName))),
		validation.Field(&ev.HeroVideo, validation.By(relativeMediaPath)),
		validation.Field(&ev.PosterImage, validation.By(relativeMediaPath)),
		validation.Field(&ev.BgMusic, validation.By(relativeMediaPath)),
	)
}

// ValidateStore проверяет документ целиком: уникальность id и ссылку на активное событие
func ValidateStore(store *models.EventStore) error {
	errs := validation.Errors{}

	seen := make(map[int64]bool, len(store.Events))
	for i := range store.Events {
		ev := &store.Events[i]
		key := fmt.Sprintf("events[%d]", i)
		duplicate := seen[ev.ID]
		seen[ev.ID] = true

		if err := ValidateEvent(ev); err != nil {
			errs[key] = err
			continue
		}
		if duplicate {
			errs[key] = fmt.Errorf("duplicate id %d", ev.ID)
		}
	}

	if id, ok := store.ActiveID(); ok && !seen[id] {
		errs["settings.activeEventId"] = fmt.Errorf("references unknown event %d", id)
	}

	return errs.Filter()
}

func artistHasName(value interface{}) error {
	a, ok := value.(models.Artist)
	if !ok {
		return nil
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("artist name is required")
	}
	return nil
}

func relativeMediaPath(value interface{}) error {
	p, ok := value.(*string)
	if !ok || p == nil {
		return nil
	}
	if strings.HasPrefix(*p, "/") || strings.Contains(*p, "://") {
		return fmt.Errorf("must be a site-relative path")
	}
	return nil
}

// RunValidation проверяет файл документа и печатает результат
func RunValidation(path string) error {
	log.Printf("Validating events document %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	store, err := models.ParseEventStore(data)
	if err != nil {
		return err
	}

	if err := ValidateStore(store); err != nil {
		return fmt.Errorf("document is invalid: %w", err)
	}

	log.Printf("✅ %d events, document is valid", len(store.Events))
	return nil
}
