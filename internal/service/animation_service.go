package service

import (
	"context"
	"errors"

	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/logger"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/pkg/design"
	"xeriscape-be/pkg/imageref"
	"xeriscape-be/pkg/upstream"
	"xeriscape-be/pkg/video/runway"
)

// VideoClient is the image-to-video backend; *runway.Client satisfies it.
type VideoClient interface {
	CreateImageToVideo(ctx context.Context, promptImage, promptText string) (string, error)
	GetTask(ctx context.Context, id string) (*runway.Task, error)
	WaitForTask(ctx context.Context, id string) (*runway.Task, error)
}

type IAnimationService interface {
	Animate(ctx context.Context, req *dto.AnimateRequest) (*dto.AnimateResponse, error)
	TaskStatus(ctx context.Context, taskID string) (*dto.AnimationTaskResponse, error)
	Configured() bool
}

type animationService struct {
	client VideoClient // nil when no key is configured
	logger logger.ILogger
}

func NewAnimationService(client VideoClient, log logger.ILogger) IAnimationService {
	return &animationService{client: client, logger: log}
}

func (s *animationService) Configured() bool {
	return s.client != nil
}

func (s *animationService) Animate(ctx context.Context, req *dto.AnimateRequest) (*dto.AnimateResponse, error) {
	if req.ImageURL == "" {
		return nil, serverutils.BadRequest("Missing imageUrl")
	}
	promptImage, err := imageref.AsURL(req.ImageURL)
	if err != nil {
		return nil, serverutils.BadRequest("Invalid imageUrl: " + err.Error())
	}
	if s.client == nil {
		return nil, serverutils.Internal("API key missing", upstream.ErrMissingAPIKey)
	}

	taskID, err := s.client.CreateImageToVideo(ctx, promptImage, design.AnimationPrompt)
	if err != nil {
		s.logger.Error("ANIMATION", "Failed to create video task", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	s.logger.Info("ANIMATION", "Video task created", map[string]interface{}{"task_id": taskID, "async": req.Async})

	if req.Async {
		return &dto.AnimateResponse{TaskID: taskID, Status: string(runway.StatusPending)}, nil
	}

	task, err := s.client.WaitForTask(ctx, taskID)
	if err != nil {
		var failed *runway.TaskFailedError
		if errors.As(err, &failed) {
			s.logger.Warn("ANIMATION", "Video task did not succeed", map[string]interface{}{
				"task_id": taskID,
				"status":  failed.Status,
				"failure": failed.Failure,
			})
			return nil, serverutils.Internal(failed.Error(), err)
		}
		return nil, err
	}

	return &dto.AnimateResponse{VideoURL: task.VideoURL(), Status: "success"}, nil
}

func (s *animationService) TaskStatus(ctx context.Context, taskID string) (*dto.AnimationTaskResponse, error) {
	if taskID == "" {
		return nil, serverutils.BadRequest("Missing taskId")
	}
	if s.client == nil {
		return nil, serverutils.Internal("API key missing", upstream.ErrMissingAPIKey)
	}

	task, err := s.client.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &dto.AnimationTaskResponse{
		TaskID:   task.ID,
		Status:   string(task.Status),
		Progress: task.Progress,
		VideoURL: task.VideoURL(),
		Failure:  task.Failure,
	}, nil
}
