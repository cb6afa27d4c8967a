package components

// ScaleComponent 存储实体级别的缩放因子
// 残影副本生成时拷贝发射者当前的缩放
type ScaleComponent struct {
	// ScaleX X轴缩放因子（1.0 = 原始大小，负值等同于水平翻转）
	ScaleX float64

	// ScaleY Y轴缩放因子
	ScaleY float64
}
