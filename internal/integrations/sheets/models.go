package sheets

// Worksheet метаданные листа внутри таблицы
type Worksheet struct {
	ID    int64
	Title string
}

// Grid прямоугольник значений, как его отдает API: строки сверху вниз,
// ячейки слева направо, пустые ячейки - пустые строки
type Grid [][]string
