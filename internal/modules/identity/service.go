package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/blognoitro/core/internal/config"
	"github.com/blognoitro/core/internal/models"
	pkgredis "github.com/blognoitro/core/internal/pkg/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceholderNickname is shown when an author record is missing.
const PlaceholderNickname = "Người dùng ẩn danh"

// nicknames is the fixed pool of Vietnamese housewife pen names.
var nicknames = []string{
	"Chị Mai Xinh", "Cô Hương Thơm", "Bà Lan Duyên", "Chị Hoa Tươi",
	"Cô Linh Đông", "Bà Thu Vàng", "Chị Nhung Mềm", "Cô Hạnh Ngọt",
	"Bà Phương Nồng", "Chị Oanh Vui", "Cô Trang Sạch", "Bà Bích Xanh",
	"Chị Thủy Trong", "Cô Kim Loại", "Bà Ngọc Quý", "Chị Hồng Tươi",
	"Cô Xuân Xanh", "Bà Hạ Mát", "Chị Thu Vàng", "Cô Đông Ấm",
	"Bà Thành Công", "Chị Yêu Đời", "Cô Hạnh Phúc", "Bà Bình An",
	"Chị Nấu Giỏi", "Cô Dọn Khéo", "Bà Trồng Rau", "Chị Bánh Ngon",
	"Cô Canh Đậm", "Bà Cơm Dẻo", "Chị Chăm Con", "Cô Yêu Chồng",
}

const (
	cachePrefix = "bnt:identity:"
	cacheTTL    = 24 * time.Hour
)

// Identity is the anonymous identity handed to a browser.
type Identity struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service issues anonymous identities. The browser-local copy is
// authoritative; the MySQL row and Redis entry are an advisory mirror that
// tolerates absence, so every storage failure here is swallowed after a log
// line and the caller still gets an identity.
type Service struct {
	db     *gorm.DB
	rc     *pkgredis.Client
	cfg    config.AvatarConfig
	logger *zap.Logger
}

func NewService(db *gorm.DB, rc *pkgredis.Client, cfg config.AvatarConfig, logger *zap.Logger) *Service {
	return &Service{db: db, rc: rc, cfg: cfg, logger: logger}
}

// Issue resolves an existing identity by id, or generates a fresh one when
// the id is empty or unknown. It never returns an error.
func (s *Service) Issue(ctx context.Context, existingID string) Identity {
	if existingID != "" {
		if ident, ok := s.lookup(ctx, existingID); ok {
			return ident
		}
	}

	ident := Identity{
		ID:        uuid.New().String(),
		Nickname:  nicknames[rand.IntN(len(nicknames))],
		Avatar:    s.avatarURL(fmt.Sprintf("%d", rand.IntN(1000))),
		CreatedAt: time.Now(),
	}
	s.mirror(ctx, ident)
	return ident
}

// Ensure guarantees an author row exists for id, creating a placeholder
// identity when missing. Comment and reaction writes call this so that
// author enrichment never dangles.
func (s *Service) Ensure(ctx context.Context, id, nickname, avatar string) Identity {
	if ident, ok := s.lookup(ctx, id); ok {
		return ident
	}

	if nickname == "" {
		nickname = PlaceholderNickname
	}
	if avatar == "" {
		avatar = s.avatarURL(id)
	}
	ident := Identity{
		ID:        id,
		Nickname:  nickname,
		Avatar:    avatar,
		CreatedAt: time.Now(),
	}
	s.mirror(ctx, ident)
	return ident
}

// Resolve returns the identity for id, falling back to the anonymous
// placeholder when the record is missing. Used for read-side enrichment.
func (s *Service) Resolve(ctx context.Context, id string) Identity {
	if ident, ok := s.lookup(ctx, id); ok {
		return ident
	}
	return Identity{
		ID:       id,
		Nickname: PlaceholderNickname,
		Avatar:   s.avatarURL(id),
	}
}

func (s *Service) lookup(ctx context.Context, id string) (Identity, bool) {
	if s.rc != nil {
		if raw, err := s.rc.Get(ctx, cachePrefix+id); err == nil && raw != "" {
			var ident Identity
			if err := json.Unmarshal([]byte(raw), &ident); err == nil {
				return ident, true
			}
		}
	}

	var user models.UserModel
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("identity lookup failed", zap.String("id", id), zap.Error(err))
		}
		return Identity{}, false
	}

	ident := Identity{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
	s.cache(ctx, ident)
	return ident, true
}

// mirror upserts the identity into MySQL and Redis, best-effort.
func (s *Service) mirror(ctx context.Context, ident Identity) {
	user := models.UserModel{
		Base:        models.Base{ID: ident.ID, CreatedAt: ident.CreatedAt},
		Nickname:    ident.Nickname,
		Avatar:      ident.Avatar,
		IsAnonymous: true,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nickname", "avatar"}),
	}).Create(&user).Error
	if err != nil {
		s.logger.Warn("identity mirror failed", zap.String("id", ident.ID), zap.Error(err))
	}
	s.cache(ctx, ident)
}

func (s *Service) cache(ctx context.Context, ident Identity) {
	if s.rc == nil {
		return
	}
	raw, err := json.Marshal(ident)
	if err != nil {
		return
	}
	if err := s.rc.Set(ctx, cachePrefix+ident.ID, raw, cacheTTL); err != nil {
		s.logger.Warn("identity cache failed", zap.String("id", ident.ID), zap.Error(err))
	}
}

func (s *Service) avatarURL(seed string) string {
	return fmt.Sprintf(s.cfg.URLTemplate, seed)
}
