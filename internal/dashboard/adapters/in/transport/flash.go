package transport

import (
	"crypto/sha256"
	"net/http"

	"guideadmin/internal/shared/logger"

	"github.com/gorilla/sessions"
)

const flashSessionName = "gmn_flash"

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash — одноразовое сообщение после редиректа (toast)
type Flash struct {
	Kind    string
	Message string
}

// FlashStore хранит тосты в подписанной cookie до следующей страницы
type FlashStore struct {
	store sessions.Store
	log   *logger.Logger
}

// NewFlashStore создает хранилище тостов; ключ подписи выводится из секрета сессии
func NewFlashStore(secret string, secure bool, log *logger.Logger) *FlashStore {
	key := sha256.Sum256([]byte("flash:" + secret))
	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store, log: log}
}

// Add добавляет тост; вызывать до записи тела ответа
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, kind, msg string) {
	sess, err := f.store.Get(r, flashSessionName)
	if err != nil {
		// подпись не сошлась (сменился секрет) — начинаем с пустой
		f.log.WithContext(r.Context()).Debug(logger.Entry{Action: "flash_cookie_reset", Message: err.Error()})
	}
	sess.AddFlash(msg, kind)
	if err := sess.Save(r, w); err != nil {
		f.log.WithContext(r.Context()).Warn(logger.Entry{
			Action:  "flash_save_failed",
			Message: err.Error(),
		})
	}
}

// Pop достаёт и удаляет все тосты
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := f.store.Get(r, flashSessionName)
	if err != nil {
		return nil
	}

	var out []Flash
	for _, kind := range []string{FlashSuccess, FlashError} {
		for _, v := range sess.Flashes(kind) {
			if msg, ok := v.(string); ok {
				out = append(out, Flash{Kind: kind, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		_ = sess.Save(r, w)
	}
	return out
}
