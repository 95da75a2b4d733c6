package generation

import (
	"context"
	"fmt"

	"book-weaver-api/internal/application/jobs"
	"book-weaver-api/internal/application/ledger"
	"book-weaver-api/internal/domain/entity"
	"book-weaver-api/internal/domain/pricing"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/logger"
)

// Service 生成流水线的拥有者：校验、定价、扣费、开任务、异步推进
type Service struct {
	ledger       *ledger.Ledger
	tracker      *jobs.Tracker
	orchestrator *Orchestrator
}

// NewService 创建生成服务
func NewService(l *ledger.Ledger, t *jobs.Tracker, o *Orchestrator) *Service {
	return &Service{ledger: l, tracker: t, orchestrator: o}
}

// PriceRequest 按当前档位解析页数的积分价格
func (s *Service) PriceRequest(pages int) (int, error) {
	cfg := s.ledger.AdminConfig()
	cost, ok := pricing.Resolve(pages, cfg.CostTiers)
	if !ok {
		return 0, apperrors.ErrUnpriceable
	}
	return cost, nil
}

// Start 启动一次书籍生成。
// 同步完成校验、定价与扣费，任何失败都不留痕迹；
// 扣费与任务登记在同一次原子变更内完成，之后流水线异步推进。
// 生成失败不退款。
func (s *Service) Start(ctx context.Context, userID string, req *entity.GenerationRequest) (string, int, error) {
	if err := req.Validate(); err != nil {
		return "", 0, err
	}

	cost, err := s.PriceRequest(req.Pages)
	if err != nil {
		return "", 0, err
	}

	tempTitle := req.Title
	if tempTitle == "" {
		tempTitle = "Untitled Book"
	}
	job := entity.NewGenerationJob(userID, tempTitle, req.AuthorName)

	if err := s.ledger.DebitAndOpen(ctx, userID, cost, func() error {
		s.tracker.Open(ctx, job)
		return nil
	}); err != nil {
		return "", 0, err
	}

	logger.Info(ctx, "generation started",
		"user_id", userID,
		"job_id", job.ID,
		"pages", req.Pages,
		"cost", cost,
	)

	go s.runPipeline(context.WithoutCancel(ctx), userID, job.ID, req)
	return job.ID, cost, nil
}

// runPipeline 消费编排器事件：中间事件转发给 tracker，
// 终态事件负责成书入库（或保留扣费）并关闭任务。
func (s *Service) runPipeline(ctx context.Context, userID, jobID string, req *entity.GenerationRequest) {
	for ev := range s.orchestrator.Run(ctx, req) {
		if !ev.Terminal() {
			s.tracker.Update(ctx, jobID, ev.Progress)
			continue
		}

		if ev.Err != nil {
			// 失败不退款，任务直接关闭
			s.tracker.Close(ctx, jobID, jobs.Update{
				Progress: ev.Progress,
				Err:      ev.Err,
			})
			continue
		}

		// 成书入库与任务关闭作为一次原子变更
		if err := s.ledger.CommitBook(ctx, userID, ev.Book, func() {
			s.tracker.Close(ctx, jobID, jobs.Update{
				Progress: ev.Progress,
				Book:     ev.Book,
			})
		}); err != nil {
			logger.Error(ctx, "failed to commit finished book", err,
				"user_id", userID,
				"job_id", jobID,
			)
			s.tracker.Close(ctx, jobID, jobs.Update{
				Progress: entity.GenerationProgress{
					Status:  entity.JobStatusFailed,
					Message: "An error occurred: the finished book could not be saved.",
				},
				Err: err,
			})
			continue
		}

		// 模拟完成通知邮件
		logger.Info(ctx, "simulated email sent",
			"to", userID,
			"subject", fmt.Sprintf("Your book %q is ready!", ev.Book.Title),
		)
	}
}
