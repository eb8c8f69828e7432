// Package saga 实现通用的Saga编排框架
//
// 适用场景：一次业务操作跨越多个系统（如MySQL+Redis+外部目录API），
// 无法用单一本地事务覆盖时，将其拆成有序步骤，每步配一个补偿操作。
// 某步失败时按逆序补偿已完成的步骤，达到最终一致。
package saga

import (
	"context"
	"fmt"
	"time"
)

// Step 表示Saga中的一个步骤
// Action是正向操作，Compensate是对应的撤销操作。
// 两者都必须幂等——失败重试或重复补偿不能放大副作用。
type Step struct {
	Name       string                          // 步骤名称（日志用）
	Action     func(ctx context.Context) error // 正向操作
	Compensate func(ctx context.Context) error // 补偿操作
}

// Saga 表示一次Saga编排
type Saga struct {
	steps    []Step        // 所有步骤
	executed []Step        // 已执行的步骤（补偿时逆序遍历）
	timeout  time.Duration // 整体超时时间
}

// NewSaga 创建一个新的Saga
//
// 示例（批量上下架：DB更新 → 缓存失效 → 外部目录同步）：
//
//	s := saga.NewSaga(30 * time.Second)
//	s.AddStep("update_status", updateStatus, restoreStatus)
//	s.AddStep("invalidate_cache", invalidate, invalidate) // 删除幂等，补偿=再删一次
//	s.AddStep("sync_merchant", syncMerchant, nil)
//	err := s.Execute(ctx)
func NewSaga(timeout time.Duration) *Saga {
	return &Saga{
		steps:   make([]Step, 0),
		timeout: timeout,
	}
}

// AddStep 添加一个步骤
// 步骤按添加顺序执行，按逆序补偿。Compensate可为nil
// （如最后一步失败时前面的补偿已足够恢复一致）
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行Saga
//
// 流程：
// 1. 按顺序执行每个步骤的Action
// 2. 某步失败或整体超时时，逆序执行已完成步骤的Compensate
// 3. 返回触发补偿的原始错误
//
// 注意：补偿本身可能失败（只记日志继续，需人工对账兜底），
// Saga提供的是最终一致性，补偿期间数据允许处于中间状态。
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		select {
		case <-ctx.Done():
			// 超时：用新Context补偿，避免补偿也被同一超时掐断
			s.compensate(context.Background())
			return fmt.Errorf("saga超时: %w", ctx.Err())
		default:
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.Background())
				return fmt.Errorf("步骤[%d:%s]执行失败: %w", i, step.Name, err)
			}
		}

		s.executed = append(s.executed, step)
	}

	return nil
}

// compensate 逆序执行已完成步骤的补偿
// 某个补偿失败不中断后续补偿（尽最大努力恢复），失败只记日志
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]

		if step.Compensate != nil {
			if err := step.Compensate(ctx); err != nil {
				// 补偿失败需要人工介入（对账任务会发现不一致）
				fmt.Printf("⚠️ 补偿失败[步骤:%s]: %v\n", step.Name, err)
			}
		}
	}

	s.executed = nil
}
