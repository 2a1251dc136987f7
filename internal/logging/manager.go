package logging

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// LoggerManager – реестр логгеров процесса по имени компонента.
// Сервер открывает файловый логгер "server", утилиты (worldstat, event-cli)
// подключают консольные логгеры через Attach.
type LoggerManager struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает реестр процесса
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{loggers: make(map[string]*Logger)}
	})
	return globalManager
}

// GetLogger возвращает логгер компонента; при первом обращении
// открывает для него файл в каталоге логов.
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if logger, ok := lm.loggers[component]; ok {
		return logger, nil
	}
	logger, err := NewLogger(component)
	if err != nil {
		return nil, fmt.Errorf("логгер компонента %q: %w", component, err)
	}
	lm.loggers[component] = logger
	return logger, nil
}

// Attach регистрирует готовый логгер под именем компонента.
// Ранее зарегистрированный логгер с тем же именем закрывается.
func (lm *LoggerManager) Attach(component string, logger *Logger) error {
	lm.mu.Lock()
	prev, ok := lm.loggers[component]
	lm.loggers[component] = logger
	lm.mu.Unlock()

	if ok && prev != logger {
		return prev.Close()
	}
	return nil
}

// CloseAll закрывает файлы всех компонентов и очищает реестр
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	loggers := lm.loggers
	lm.loggers = make(map[string]*Logger)
	lm.mu.Unlock()

	var errs []error
	for component, logger := range loggers {
		if err := logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("закрытие логгера %q: %w", component, err))
		}
	}
	return errors.Join(errs...)
}

// ListComponents возвращает имена зарегистрированных компонентов по алфавиту
func (lm *LoggerManager) ListComponents() []string {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// SetLogLevel задаёт пороги консоли и файла; уровень консоли обычно
// приходит из log_level конфигурации.
func (lm *LoggerManager) SetLogLevel(component string, consoleLevel, fileLevel LogLevel) error {
	lm.mu.Lock()
	logger, ok := lm.loggers[component]
	lm.mu.Unlock()

	if !ok {
		return fmt.Errorf("компонент %q не зарегистрирован", component)
	}
	logger.SetConsoleLevel(consoleLevel)
	logger.SetFileLevel(fileLevel)
	return nil
}
