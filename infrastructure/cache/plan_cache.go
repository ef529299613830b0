package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/internal/domain"
)

// mapas são serializados com chaves ordenadas, o que torna a chave estável
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const keyPrefix = "plan:"

// NewRedisClient abre e valida a conexão com o Redis
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("falha ao conectar no Redis: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	}).Info("Conectado ao Redis")

	return client, nil
}

// PlanCache guarda respostas de estimativa por hash da requisição
type PlanCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewPlanCache(client redis.Cmdable, ttl time.Duration) *PlanCache {
	return &PlanCache{
		client: client,
		ttl:    ttl,
	}
}

// Key gera a chave do cache a partir do JSON canônico da requisição
func Key(req domain.PlanRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	sum := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}

// Get devolve a resposta guardada; found é false quando a chave não existe
func (c *PlanCache) Get(ctx context.Context, key string) (*domain.PlanResponse, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("erro ao ler cache: %w", err)
	}

	resp := &domain.PlanResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, false, fmt.Errorf("erro ao deserializar plano do cache: %w", err)
	}

	return resp, true, nil
}

func (c *PlanCache) Set(ctx context.Context, key string, resp *domain.PlanResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("erro ao serializar plano: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar cache: %w", err)
	}

	return nil
}
